package config

const (
	KeyLogLevel = "log_level"

	KeyChunkSizeBytes       = "chunk_size_bytes"
	KeyOverlapRatio         = "overlap_ratio"
	KeyRespectSpecialBlocks = "respect_special_blocks"
	KeyPreserveStructure    = "preserve_structure"
	KeyLanguage             = "language"
	KeyContentType          = "content_type"
	KeyStrategy             = "chunk_strategy"

	KeyMaxConcurrency = "max_concurrency"
	KeyIncludeGlobs   = "include_globs"
	KeyExcludeGlobs   = "exclude_globs"
	KeyMaxFiles       = "max_files"
	KeyMaxChunks      = "max_chunks"

	KeyServerHost = "server_host"
	KeyServerPort = "server_port"
)
