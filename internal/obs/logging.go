// Package obs concentra logging estruturado e telemetria do serviço.
package obs

import (
	"log/slog"
	"os"
)

// Logger logger estruturado global do serviço
var Logger *slog.Logger

// InitLogger inicializa o Logger global com handler JSON em nível info
func InitLogger() {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	Logger = slog.New(h)
}

func init() {
	// mantém o Logger utilizável em testes que nunca chamam InitLogger
	if Logger == nil {
		InitLogger()
	}
}
