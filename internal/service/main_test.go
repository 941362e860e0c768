package service

import (
	"os"
	"testing"

	"go.uber.org/zap"

	"github.com/priya-tenac/Ai-Study-Buddy/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}
