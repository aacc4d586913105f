package useragent

import (
	"fmt"
	"os"
	"sync"

	"github.com/ua-parser/uap-go/uaparser"
	"go.uber.org/zap"
)

// Parser wraps the uap-go parser used to enrich clicks with an OS family.
// Device type and browser family come from the substring rules in detect.go;
// the regex parser only fills in the OS field.
type Parser struct {
	parser *uaparser.Parser
	log    *zap.Logger
}

var (
	globalParser *Parser
	once         sync.Once
)

// NewParser creates a parser from a uap-core regexes file. When the file is
// missing the definitions embedded in uap-go are used instead, so the service
// stays functional without the asset on disk.
func NewParser(regexFilePath string, log *zap.Logger) (*Parser, error) {
	if _, err := os.Stat(regexFilePath); err == nil {
		parser, err := uaparser.New(regexFilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to create User-Agent parser from %s: %w", regexFilePath, err)
		}
		log.Info("User-Agent parser initialized", zap.String("regexes_file", regexFilePath))
		return &Parser{parser: parser, log: log}, nil
	}

	log.Info("regexes file not found, using embedded User-Agent definitions",
		zap.String("regexes_file", regexFilePath))
	return &Parser{parser: uaparser.NewFromSaved(), log: log}, nil
}

// InitGlobalParser initializes the process-wide parser instance.
func InitGlobalParser(regexFilePath string, log *zap.Logger) error {
	var err error
	once.Do(func() {
		globalParser, err = NewParser(regexFilePath, log)
	})
	return err
}

// GetGlobalParser returns the singleton parser, nil if never initialized.
func GetGlobalParser() *Parser {
	return globalParser
}

// ParseOS returns the OS family for a User-Agent, empty when unknown.
func (p *Parser) ParseOS(userAgent string) string {
	if userAgent == "" {
		return ""
	}

	client := p.parser.Parse(userAgent)
	family := client.Os.Family
	if family == "" || family == "Other" {
		return ""
	}
	return family
}
