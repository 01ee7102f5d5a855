package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sreehariX/sarcv2/internal/config"
	"github.com/sreehariX/sarcv2/internal/faq"
	"github.com/sreehariX/sarcv2/internal/server"
)

var serveAddrFlag string

// serveCmd runs the FAQ search service
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the FAQ search service",
	Long: `Run the HTTP search service the widget queries. The service indexes
faqs.json at startup and serves POST /search and GET /health.

The listen address comes from --addr, the SARC_ADDR environment
variable, or defaults to :8000. A .env file in the working directory is
loaded if present.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Optional local overrides; absence is not an error.
		_ = godotenv.Load()

		cfg, _ := config.LoadConfig()

		addr := serveAddrFlag
		if addr == "" {
			addr = os.Getenv("SARC_ADDR")
		}
		if addr == "" {
			addr = ":8000"
		}

		faqPath := faqPathFlag
		if faqPath == "" {
			faqPath = os.Getenv("SARC_FAQ_PATH")
		}
		if faqPath == "" {
			faqPath = cfg.FAQPath
		}

		entries, err := faq.Load(faqPath)
		if err != nil {
			return fmt.Errorf("failed to load FAQ corpus: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Indexed %d FAQ entries from %s\n", len(entries), faqPath)

		srv := server.New(addr, entries)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.ListenAndServe()
		}()

		fmt.Fprintf(os.Stderr, "Search service listening on %s\n", addr)

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddrFlag, "addr", "", "Listen address (default :8000)")
	serveCmd.Flags().StringVar(&faqPathFlag, "faq", "", "Path to faqs.json (overrides config)")
}
