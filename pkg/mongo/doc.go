// Package mongo connects the service to its MongoDB document store.
//
// New applies the pool and retry settings from Config, pings the server and
// retries with a fixed interval until the attempts run out or the context is
// done. Failed attempts are disconnected before the next one.
//
// # Usage
//
//	var cfg mongo.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
//	client, err := mongo.New(ctx, cfg)
//	if err != nil {
//		return err // errors.Is(err, mongo.ErrFailedToConnectToMongo)
//	}
//	defer mongo.Close(context.Background(), client)
//
//	db := client.Database(cfg.Database)
//	ready := mongo.Healthcheck(client)
//
// # Configuration
//
// Config is populated from MONGODB_* environment variables; only MONGODB_URL
// is required.
//
// # See Also
//
// Documentation for the official driver: https://pkg.go.dev/go.mongodb.org/mongo-driver/v2.
package mongo
