package sqlite

import "database/sql"

// schema sets up the database tables. It runs on startup to ensure tables exist.
// Money is stored as integer cents. Diners, dishes and dish assignments carry a
// position column so a bill reads back in the order it was written. Dish IDs
// come from clients and are only unique within their bill.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS bills (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    title TEXT NOT NULL,
    tax_cents INTEGER NOT NULL DEFAULT 0,
    tip_cents INTEGER NOT NULL DEFAULT 0,
    fees_cents INTEGER NOT NULL DEFAULT 0,
    receipt_total_cents INTEGER,
    payer_id TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS diners (
    bill_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    PRIMARY KEY (bill_id, position),
    FOREIGN KEY (bill_id) REFERENCES bills(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS dishes (
    bill_id TEXT NOT NULL,
    id TEXT NOT NULL,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    quantity INTEGER NOT NULL DEFAULT 1,
    price_cents INTEGER NOT NULL,
    price_mode TEXT NOT NULL DEFAULT 'total',
    PRIMARY KEY (bill_id, id),
    FOREIGN KEY (bill_id) REFERENCES bills(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS dish_diners (
    bill_id TEXT NOT NULL,
    dish_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    diner_index INTEGER NOT NULL,
    PRIMARY KEY (bill_id, dish_id, position),
    FOREIGN KEY (bill_id, dish_id) REFERENCES dishes(bill_id, id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_bills_owner_id ON bills(owner_id, created_at);
CREATE INDEX IF NOT EXISTS idx_diners_bill_id ON diners(bill_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
