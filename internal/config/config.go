package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Init(root *cobra.Command) {
	viper.AutomaticEnv()
	_ = godotenv.Load(".env")
	if root != nil {
		_ = viper.BindPFlags(root.PersistentFlags())
	}
	setDefaults()
}

func setDefaults() {
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyChunkSizeBytes, 1024)
	viper.SetDefault(KeyOverlapRatio, 0.1)
	viper.SetDefault(KeyRespectSpecialBlocks, true)
	viper.SetDefault(KeyPreserveStructure, true)
	viper.SetDefault(KeyLanguage, "auto")
	viper.SetDefault(KeyContentType, "auto")
	viper.SetDefault(KeyStrategy, "adaptive")
	viper.SetDefault(KeyMaxConcurrency, 0)
	viper.SetDefault(KeyIncludeGlobs, []string{"**/*.md", "**/*.mdx", "**/*.txt"})
	viper.SetDefault(KeyExcludeGlobs, []string{"**/.git/**", "**/node_modules/**"})
	viper.SetDefault(KeyMaxFiles, 0)
	viper.SetDefault(KeyMaxChunks, 0)
	viper.SetDefault(KeyServerHost, "0.0.0.0")
	viper.SetDefault(KeyServerPort, 8000)
}

func LogLevel() string           { return viper.GetString(KeyLogLevel) }
func ChunkSizeBytes() int        { return viper.GetInt(KeyChunkSizeBytes) }
func OverlapRatio() float64      { return viper.GetFloat64(KeyOverlapRatio) }
func RespectSpecialBlocks() bool { return viper.GetBool(KeyRespectSpecialBlocks) }
func PreserveStructure() bool    { return viper.GetBool(KeyPreserveStructure) }
func Language() string           { return viper.GetString(KeyLanguage) }
func ContentType() string        { return viper.GetString(KeyContentType) }
func Strategy() string           { return viper.GetString(KeyStrategy) }
func MaxConcurrency() int        { return viper.GetInt(KeyMaxConcurrency) }
func IncludeGlobs() []string     { return viper.GetStringSlice(KeyIncludeGlobs) }
func ExcludeGlobs() []string     { return viper.GetStringSlice(KeyExcludeGlobs) }
func MaxFiles() int              { return viper.GetInt(KeyMaxFiles) }
func MaxChunks() int             { return viper.GetInt(KeyMaxChunks) }
func ServerHost() string         { return viper.GetString(KeyServerHost) }
func ServerPort() int            { return viper.GetInt(KeyServerPort) }
