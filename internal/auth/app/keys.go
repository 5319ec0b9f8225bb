package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/quickplate/quickplate/pkg/cryptox"
	"github.com/quickplate/quickplate/pkg/jwtx"
)

// InitSigner loads or generates the Ed25519 session-token signing key.
//
// With SigningKeyFile unset the key is generated on startup and held only
// in memory, so all existing remembered sessions become invalid when the
// service restarts. With SigningKeyFile set, a key is generated and
// written on first start and reused afterwards.
func InitSigner(cfg Config, logger *slog.Logger) (*jwtx.Signer, error) {
	if cfg.SigningKeyFile == "" {
		pemKey, err := cryptox.GenerateEd25519Key()
		if err != nil {
			return nil, fmt.Errorf("generate signing key: %w", err)
		}
		logger.Info("using ephemeral signing key", "kid", cfg.KeyID)
		return jwtx.NewSigner(cfg.KeyID, pemKey)
	}

	pemKey, err := os.ReadFile(cfg.SigningKeyFile)
	if errors.Is(err, fs.ErrNotExist) {
		pemKey, err = cryptox.GenerateEd25519Key()
		if err != nil {
			return nil, fmt.Errorf("generate signing key: %w", err)
		}
		if err := os.WriteFile(cfg.SigningKeyFile, pemKey, 0o600); err != nil {
			return nil, fmt.Errorf("write signing key: %w", err)
		}
		logger.Info("generated new signing key", "path", cfg.SigningKeyFile, "kid", cfg.KeyID)
	} else if err != nil {
		return nil, fmt.Errorf("read signing key: %w", err)
	} else {
		logger.Info("loaded signing key", "path", cfg.SigningKeyFile, "kid", cfg.KeyID)
	}

	return jwtx.NewSigner(cfg.KeyID, pemKey)
}
