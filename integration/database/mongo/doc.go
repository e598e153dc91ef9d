// Package mongo provides MongoDB client initialization and health checking
// for the MongoDB session store.
//
// New and NewWithDatabase retry the initial connection to survive MongoDB
// Atlas cold starts (5-8 seconds) and short network interruptions.
//
//	var cfg mongo.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
//	db, err := mongo.NewWithDatabase(ctx, cfg, "")
//	if err != nil {
//		return err
//	}
//	store, err := session.NewMongoStore(ctx, db.Collection("sessions"))
//
// # Configuration
//
//	MONGODB_URL                 (required)
//	MONGODB_DATABASE            (default: accesscore)
//	MONGODB_CONNECT_TIMEOUT     (default: 10s)
//	MONGODB_MAX_POOL_SIZE       (default: 100)
//	MONGODB_MIN_POOL_SIZE       (default: 1)
//	MONGODB_MAX_CONN_IDLE_TIME  (default: 300s)
//	MONGODB_RETRY_WRITES        (default: true)
//	MONGODB_RETRY_READS         (default: true)
//	MONGODB_RETRY_ATTEMPTS      (default: 3)
//	MONGODB_RETRY_INTERVAL      (default: 5s)
//
// # Errors
//
//	ErrFailedToConnectToMongo - all retry attempts are exhausted
//	ErrHealthcheckFailed      - health check ping failed
//	ErrEmptyConnectionURL     - no URL configured
package mongo
