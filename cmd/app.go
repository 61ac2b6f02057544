package cmd

import (
	"context"

	"github.com/spf13/viper"
	"github.com/sw33tLie/medimind/internal/utils"
	"github.com/sw33tLie/medimind/pkg/predictor"
	"github.com/sw33tLie/medimind/pkg/session"
	"github.com/sw33tLie/medimind/pkg/storage"
	"github.com/sw33tLie/medimind/pkg/whttp"
)

func newPredictorClient() (*predictor.Client, error) {
	httpClient, err := whttp.NewClient(viper.GetInt("http.retries"), viper.GetString("http.proxy"))
	if err != nil {
		return nil, err
	}
	return predictor.NewClient(viper.GetString("api.url"), httpClient)
}

func openStorage() (*storage.DB, error) {
	dbPath, err := utils.GetAbsDBPath(viper.GetString("storage.path"))
	if err != nil {
		return nil, err
	}
	utils.Log.Debugf("Using local storage %s", dbPath)
	return storage.Open(dbPath)
}

// openSession wires local storage and the prediction client into a session
// with its stored state loaded. The catalog is only fetched when withCatalog
// is set. The caller closes the returned store.
func openSession(ctx context.Context, withCatalog bool) (*session.App, *storage.DB, error) {
	db, err := openStorage()
	if err != nil {
		return nil, nil, err
	}
	client, err := newPredictorClient()
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	app := session.New(client, db, session.WithLogger(utils.Log))
	app.LoadState(ctx)
	if withCatalog {
		app.LoadCatalog(ctx)
	}
	return app, db, nil
}
