package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const testCorpusJSON = `{
	"responses": {
		"kargo_takip": {
			"keywords": ["kargo takip", "kargom nerede"],
			"message": "Kargonuzu sipariş numaranızla takip edebilirsiniz."
		},
		"default_response": "Üzgünüm, bu konuda hazır bir yanıtım yok."
	}
}`

func writeTestCorpus(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.json")
	require.NoError(t, os.WriteFile(path, []byte(testCorpusJSON), 0o600))
	return path
}

func testApp() *cli.App {
	return &cli.App{
		Name: "answerit",
		Commands: []*cli.Command{
			{
				Name:   "ask",
				Action: askCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "corpus",
						Aliases:  []string{"c"},
						Required: true,
					},
					&cli.StringFlag{Name: "context"},
					&cli.StringFlag{
						Name:  "host",
						Value: "http://localhost:11434/v1",
					},
					&cli.BoolFlag{Name: "no-ai"},
					&cli.BoolFlag{Name: "quality"},
					&cli.DurationFlag{Name: "budget"},
					&cli.BoolFlag{Name: "generative"},
				},
			},
			{
				Name:   "classify",
				Action: classifyCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "corpus",
						Aliases:  []string{"c"},
						Required: true,
					},
					&cli.StringFlag{Name: "context"},
				},
			},
		},
	}
}

func TestAskCommand(t *testing.T) {
	app := testApp()

	t.Run("corpus flag is required", func(t *testing.T) {
		err := app.Run([]string{"answerit", "ask", "kargom nerede"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "corpus")
	})

	t.Run("query argument is required", func(t *testing.T) {
		err := app.Run([]string{"answerit", "ask", "--corpus", writeTestCorpus(t), "--no-ai"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query")
	})

	t.Run("answers from the corpus without AI", func(t *testing.T) {
		err := app.Run([]string{"answerit", "ask",
			"--corpus", writeTestCorpus(t), "--no-ai", "kargom nerede"})
		assert.NoError(t, err)
	})

	t.Run("missing corpus file fails", func(t *testing.T) {
		err := app.Run([]string{"answerit", "ask",
			"--corpus", filepath.Join(t.TempDir(), "missing.json"), "--no-ai", "kargom nerede"})
		require.Error(t, err)
	})
}

func TestClassifyCommand(t *testing.T) {
	app := testApp()

	t.Run("classifies without a provider", func(t *testing.T) {
		err := app.Run([]string{"answerit", "classify",
			"--corpus", writeTestCorpus(t), "kargom nerede"})
		assert.NoError(t, err)
	})

	t.Run("query argument is required", func(t *testing.T) {
		err := app.Run([]string{"answerit", "classify", "--corpus", writeTestCorpus(t)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query")
	})
}

func TestSetupLogger(t *testing.T) {
	newApp := func() *cli.App {
		return &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "log-level",
					Aliases: []string{"l"},
					Value:   "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error { return nil },
		}
	}

	t.Run("valid log levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "WARN", "Error"} {
			t.Run(level, func(t *testing.T) {
				require.NoError(t, newApp().Run([]string{"test", "--log-level", level}))
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		err := newApp().Run([]string{"test", "--log-level", "loud"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("log-level flag has alias -l", func(t *testing.T) {
		require.NoError(t, newApp().Run([]string{"test", "-l", "debug"}))
	})
}
