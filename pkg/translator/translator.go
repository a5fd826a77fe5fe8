package translator

import (
	"embed"
	"fmt"
	"os"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var Translator *i18n.Bundle

//go:embed translation/*.toml
var embedded embed.FS

type Config struct {
	// TranslationFolder overrides the embedded message files when set.
	TranslationFolder  string
	SupportedLanguages []string
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

// InitTranslator loads the message bundle. Without a folder override it
// uses the files embedded at build time, so neither the binary nor the
// tests depend on the working directory.
func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	if cfg.TranslationFolder != "" {
		loadFromFolder(cfg.TranslationFolder)
		return
	}

	entries, err := embedded.ReadDir("translation")
	if err != nil {
		zap.L().Error("failed to read embedded translations", zap.Error(err))
		return
	}
	for _, f := range entries {
		data, err := embedded.ReadFile("translation/" + f.Name())
		if err != nil {
			zap.L().Warn("failed to read embedded translation file", zap.String("file", f.Name()), zap.Error(err))
			continue
		}
		if _, err := Translator.ParseMessageFileBytes(data, f.Name()); err != nil {
			zap.L().Warn("failed to parse translation file", zap.String("file", f.Name()), zap.Error(err))
		}
	}
}

func loadFromFolder(folder string) {
	lstFiles, err := os.ReadDir(folder)
	if err != nil {
		zap.L().Error("failed to list translation folder", zap.String("folder", folder), zap.Error(err))
		return
	}

	for _, f := range lstFiles {
		if f.IsDir() {
			continue
		}
		filepath := fmt.Sprintf("%s/%s", folder, f.Name())
		if _, err := Translator.LoadMessageFile(filepath); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", f.Name()), zap.Error(err))
		}
	}
}
