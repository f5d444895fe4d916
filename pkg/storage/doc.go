// Package storage provides a small key/value store behind a single
// capability interface with a fixed set of backends.
//
// Every backend is built by its own constructor returning the Store
// interface; NewStore picks the backend from configuration:
//
//	store, err := storage.NewStore(storage.Config{Kind: storage.KindSQLite, DSN: ":memory:"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer store.Close()
//
//	err = store.Put("greeting", "hello")
//	value, err := store.Get("greeting")
//
// Adding a backend means adding a constructor and a case to NewStore; the
// set of kinds is closed on purpose.
package storage
