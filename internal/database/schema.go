package database

// Amounts are integer cents. A debt's group scope is NULL for direct person
// to person debts; the unique index folds NULL to 0 so that two ungrouped
// rows for the same ordered pair collide as well.

const postgresSchema = `
CREATE TABLE IF NOT EXISTS debts (
    id BIGSERIAL PRIMARY KEY,
    lender_id BIGINT NOT NULL,
    borrower_id BIGINT NOT NULL,
    amount BIGINT NOT NULL CHECK (amount > 0),
    description TEXT,
    group_id BIGINT,
    updated_at TIMESTAMPTZ NOT NULL,
    CHECK (lender_id <> borrower_id)
);

CREATE UNIQUE INDEX IF NOT EXISTS uq_debts_pair_group
    ON debts (lender_id, borrower_id, COALESCE(group_id, 0));
CREATE INDEX IF NOT EXISTS idx_debts_borrower_id ON debts (borrower_id);

CREATE TABLE IF NOT EXISTS group_balances (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    group_id BIGINT NOT NULL,
    balance BIGINT NOT NULL DEFAULT 0,
    UNIQUE (user_id, group_id)
);

CREATE INDEX IF NOT EXISTS idx_group_balances_group_id ON group_balances (group_id);

CREATE TABLE IF NOT EXISTS expenses (
    id BIGSERIAL PRIMARY KEY,
    creator_id BIGINT NOT NULL,
    group_id BIGINT,
    category TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    amount BIGINT NOT NULL CHECK (amount > 0),
    payers_split TEXT NOT NULL,
    owers_split TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS expense_balances (
    expense_id BIGINT NOT NULL REFERENCES expenses(id) ON DELETE CASCADE,
    user_id BIGINT NOT NULL,
    paid BIGINT NOT NULL,
    owed BIGINT NOT NULL,
    total BIGINT NOT NULL,
    PRIMARY KEY (expense_id, user_id)
);

CREATE TABLE IF NOT EXISTS settlements (
    id UUID PRIMARY KEY,
    batch_id UUID NOT NULL,
    group_id BIGINT NOT NULL,
    debtor_id BIGINT NOT NULL,
    creditor_id BIGINT NOT NULL,
    amount BIGINT NOT NULL CHECK (amount > 0),
    seq BIGINT NOT NULL,
    status TEXT NOT NULL DEFAULT 'PENDING',
    created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_settlements_group_id ON settlements (group_id);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS debts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    lender_id INTEGER NOT NULL,
    borrower_id INTEGER NOT NULL,
    amount INTEGER NOT NULL CHECK (amount > 0),
    description TEXT,
    group_id INTEGER,
    updated_at TIMESTAMP NOT NULL,
    CHECK (lender_id <> borrower_id)
);

CREATE UNIQUE INDEX IF NOT EXISTS uq_debts_pair_group
    ON debts (lender_id, borrower_id, COALESCE(group_id, 0));
CREATE INDEX IF NOT EXISTS idx_debts_borrower_id ON debts (borrower_id);

CREATE TABLE IF NOT EXISTS group_balances (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    group_id INTEGER NOT NULL,
    balance INTEGER NOT NULL DEFAULT 0,
    UNIQUE (user_id, group_id)
);

CREATE INDEX IF NOT EXISTS idx_group_balances_group_id ON group_balances (group_id);

CREATE TABLE IF NOT EXISTS expenses (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    creator_id INTEGER NOT NULL,
    group_id INTEGER,
    category TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    amount INTEGER NOT NULL CHECK (amount > 0),
    payers_split TEXT NOT NULL,
    owers_split TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS expense_balances (
    expense_id INTEGER NOT NULL REFERENCES expenses(id) ON DELETE CASCADE,
    user_id INTEGER NOT NULL,
    paid INTEGER NOT NULL,
    owed INTEGER NOT NULL,
    total INTEGER NOT NULL,
    PRIMARY KEY (expense_id, user_id)
);

CREATE TABLE IF NOT EXISTS settlements (
    id TEXT PRIMARY KEY,
    batch_id TEXT NOT NULL,
    group_id INTEGER NOT NULL,
    debtor_id INTEGER NOT NULL,
    creditor_id INTEGER NOT NULL,
    amount INTEGER NOT NULL CHECK (amount > 0),
    seq INTEGER NOT NULL,
    status TEXT NOT NULL DEFAULT 'PENDING',
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_settlements_group_id ON settlements (group_id);
`
