package types

// SegmentConfig holds settings for splitting page text into paragraphs.
type SegmentConfig struct {
	// MinLength is the minimum paragraph length in characters (default 50).
	MinLength int `json:"min_length" yaml:"min_length" mapstructure:"min_length"`
}

// SelectConfig holds settings for choosing which paragraphs of a document
// are kept.
type SelectConfig struct {
	// ScoreFloor is the relevance floor: only paragraphs scoring strictly
	// above it are kept (default 2).
	ScoreFloor int `json:"score_floor" yaml:"score_floor" mapstructure:"score_floor"`

	// CharBudget is the per-document character budget (default 12000).
	CharBudget int `json:"char_budget" yaml:"char_budget" mapstructure:"char_budget"`
}

// SearchConfig holds settings for the query matcher.
type SearchConfig struct {
	// MaxResults is the default number of results returned (default 5).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// MinTokenLength is the shortest query token that is matched (default 3).
	MinTokenLength int `json:"min_token_length" yaml:"min_token_length" mapstructure:"min_token_length"`
}

// CorpusConfig holds settings for locating source documents.
type CorpusConfig struct {
	// Dir is the corpus root directory.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// Includes are doublestar patterns, relative to Dir, of files to process.
	Includes []string `json:"includes" yaml:"includes" mapstructure:"includes"`

	// Excludes are doublestar patterns of files and directories to skip.
	Excludes []string `json:"excludes" yaml:"excludes" mapstructure:"excludes"`
}

// ConversionBackend identifies the page extraction tool.
type ConversionBackend string

const (
	BackendAuto       ConversionBackend = "auto"
	BackendText       ConversionBackend = "text"
	BackendPdftotext  ConversionBackend = "pdftotext"
	BackendMarkitdown ConversionBackend = "markitdown"
)

// ConversionConfig holds settings for the page extraction stage.
type ConversionConfig struct {
	// Backend selects the extractor: auto, text, pdftotext, or markitdown.
	Backend ConversionBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// PDFBackend is the extractor auto uses for non-text files.
	PDFBackend ConversionBackend `json:"pdf_backend" yaml:"pdf_backend" mapstructure:"pdf_backend"`
}

// StoreConfig holds settings for the persisted snippet store.
type StoreConfig struct {
	// Dir is the base directory for the store (contains index/).
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// BuildConfig holds settings for the build run.
type BuildConfig struct {
	// Workers is the number of documents processed concurrently (default 1).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level"`    // debug, info, warn, error
	Format string `json:"format" yaml:"format" mapstructure:"format"` // console or json
}

// Config groups all stage configurations.
type Config struct {
	// Vocabulary is the list of relevance terms. Nil means unset and selects
	// the built-in terms; an empty list is an empty vocabulary.
	Vocabulary []string `json:"vocabulary" yaml:"vocabulary" mapstructure:"vocabulary"`

	// VocabularyFile, when set, replaces Vocabulary with the terms in a YAML file.
	VocabularyFile string `json:"vocabulary_file" yaml:"vocabulary_file" mapstructure:"vocabulary_file"`

	Segment    SegmentConfig    `json:"segment" yaml:"segment" mapstructure:"segment"`
	Select     SelectConfig     `json:"select" yaml:"select" mapstructure:"select"`
	Search     SearchConfig     `json:"search" yaml:"search" mapstructure:"search"`
	Corpus     CorpusConfig     `json:"corpus" yaml:"corpus" mapstructure:"corpus"`
	Conversion ConversionConfig `json:"conversion" yaml:"conversion" mapstructure:"conversion"`
	Store      StoreConfig      `json:"store" yaml:"store" mapstructure:"store"`
	Build      BuildConfig      `json:"build" yaml:"build" mapstructure:"build"`
	Logging    LoggingConfig    `json:"logging" yaml:"logging" mapstructure:"logging"`
}
