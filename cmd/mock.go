package cmd

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Rorical/RoriSQL/internal/logging"
	"github.com/Rorical/RoriSQL/internal/mockserver"
)

var (
	mockAddr     string
	mockFixtures string
)

var mockBackendCmd = &cobra.Command{
	Use:   "mock-backend",
	Short: "Run a development backend that answers from fixtures",
	Long: `Serve POST /generate-sql from a fixture file mapping questions to responses.
Without --fixtures a small built-in set is used.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		logger := logging.New(os.Stderr, logLevel())

		fixtures := mockserver.DefaultFixtures()
		if mockFixtures != "" {
			loaded, err := mockserver.LoadFixtures(mockFixtures)
			if err != nil {
				log.Fatalf("Failed to load fixtures: %v", err)
			}
			fixtures = loaded
		}

		gin.SetMode(gin.ReleaseMode)
		router := mockserver.New(fixtures, logger).Router()

		log.Printf("Mock backend listening on %s with %d fixtures", mockAddr, len(fixtures))
		if err := router.Run(mockAddr); err != nil {
			log.Fatalf("Mock backend stopped: %v", err)
		}
	},
}

func init() {
	mockBackendCmd.Flags().StringVar(&mockAddr, "addr", ":8000", "Listen address")
	mockBackendCmd.Flags().StringVar(&mockFixtures, "fixtures", "", "Path to a JSON fixture file")

	rootCmd.AddCommand(mockBackendCmd)
}
