package logger

import (
	"os"
	"testing"

	"github.com/impactlink/matchengine/internal/config"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Cleanup_ClosesLogFileOpenedBySetup(t *testing.T) {
	t.Cleanup(func() {
		logFile = nil
		log.SetOutput(os.Stdout)
		_ = os.RemoveAll("./logs")
	})

	Setup(config.LoggerConfig{
		LogLevel:   config.LevelInfo,
		OutputFile: "cleanup_test.log",
	})
	require.NotNil(t, logFile)

	Cleanup()

	// A second close on the same handle fails, proving Cleanup closed it.
	assert.Error(t, logFile.Close())
}
