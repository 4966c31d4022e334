// Command checkout-smoke runs one checkout attempt against a running API and
// prints what a browser would receive. Useful after a deploy or key rotation.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sefazor/stoicaf-backend/pkg/checkout"
	"github.com/sefazor/stoicaf-backend/pkg/logger"
	"go.uber.org/zap"
)

type printMounter struct{}

func (printMounter) Mount(publishableKey, clientSecret string) error {
	fmt.Printf("mount embedded checkout\n  key:    %s\n  secret: %s\n", publishableKey, clientSecret)
	return nil
}

func (printMounter) Unmount() {}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal("Error loading .env file: ", err)
	}

	zapLogger, err := logger.New(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer zapLogger.Sync()

	cfg, err := checkout.LoadClientConfig()
	if err != nil {
		zapLogger.Fatal("invalid checkout config", zap.Error(err))
	}

	controller, err := checkout.NewController(cfg,
		checkout.NewServerAcquirer(cfg).WithTimeout(15*time.Second),
		checkout.WithMounter(printMounter{}),
		checkout.WithNavigator(checkout.NavigatorFunc(func(url string) {
			fmt.Printf("redirect to %s\n", url)
		})),
		checkout.WithLogger(zapLogger),
	)
	if err != nil {
		zapLogger.Fatal("checkout controller", zap.Error(err))
	}

	controller.Open(context.Background())
	controller.Wait()

	state := controller.State()
	if state.Status == checkout.StatusError {
		fmt.Fprintf(os.Stderr, "checkout failed (%s): %s\n", state.ErrorKind, state.Error)
		os.Exit(1)
	}
	controller.Close()
}
