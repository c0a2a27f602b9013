// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultdb

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

func init() {
	openHooks["sqlite3"] = func(db *sql.DB) error {
		// Each connection to ":memory:" is a separate database, and
		// SQLite allows only one writer anyway.
		db.SetMaxOpenConns(1)
		return nil
	}
}
