package database

import (
	"context"
	"database/sql"
)

// schema contains the DDL for every table the service touches.  Each
// statement is idempotent so EnsureSchema can run on every startup.
// Foreign keys cascade on user deletion so no booking, item, request or
// comment may reference a deleted user.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id    BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name  VARCHAR(255)    NOT NULL,
		email VARCHAR(255)    NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS requests (
		id           BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		description  VARCHAR(1000)   NOT NULL,
		requestor_id BIGINT UNSIGNED NOT NULL,
		created      DATETIME        NOT NULL,
		PRIMARY KEY (id),
		KEY idx_requests_requestor (requestor_id),
		CONSTRAINT fk_requests_requestor FOREIGN KEY (requestor_id)
			REFERENCES users (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS items (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name        VARCHAR(255)    NOT NULL,
		description VARCHAR(1000)   NOT NULL,
		available   BOOLEAN         NOT NULL DEFAULT TRUE,
		owner_id    BIGINT UNSIGNED NOT NULL,
		request_id  BIGINT UNSIGNED NULL,
		PRIMARY KEY (id),
		KEY idx_items_owner (owner_id),
		KEY idx_items_request (request_id),
		CONSTRAINT fk_items_owner FOREIGN KEY (owner_id)
			REFERENCES users (id) ON DELETE CASCADE,
		CONSTRAINT fk_items_request FOREIGN KEY (request_id)
			REFERENCES requests (id) ON DELETE SET NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		start_date DATETIME        NOT NULL,
		end_date   DATETIME        NOT NULL,
		item_id    BIGINT UNSIGNED NOT NULL,
		booker_id  BIGINT UNSIGNED NOT NULL,
		status     ENUM('WAITING','APPROVED','REJECTED') NOT NULL DEFAULT 'WAITING',
		PRIMARY KEY (id),
		KEY idx_bookings_item (item_id),
		KEY idx_bookings_booker (booker_id),
		CONSTRAINT fk_bookings_item FOREIGN KEY (item_id)
			REFERENCES items (id) ON DELETE CASCADE,
		CONSTRAINT fk_bookings_booker FOREIGN KEY (booker_id)
			REFERENCES users (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS comments (
		id        BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		text      VARCHAR(2000)   NOT NULL,
		item_id   BIGINT UNSIGNED NOT NULL,
		author_id BIGINT UNSIGNED NOT NULL,
		created   DATETIME        NOT NULL,
		PRIMARY KEY (id),
		KEY idx_comments_item (item_id),
		CONSTRAINT fk_comments_item FOREIGN KEY (item_id)
			REFERENCES items (id) ON DELETE CASCADE,
		CONSTRAINT fk_comments_author FOREIGN KEY (author_id)
			REFERENCES users (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates any missing tables.  It is safe to call on every
// startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
