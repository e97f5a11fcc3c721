package config

// SourceFileExt is the extension of Orion source files
const SourceFileExt = ".orn"

// CompiledFileExt is the extension of compiled chunk files
const CompiledFileExt = ".ornc"

// ConfigFileName is the per-project configuration file looked up in the
// working directory
const ConfigFileName = "orion.yaml"
