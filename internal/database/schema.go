package database

import (
	"context"
	"database/sql"
)

// Migrate creates the application tables when they do not yet exist.
// The reservations table carries a virtual confirmed_slot column with a
// unique key over (table_id, reserved_at, confirmed_slot): cancelled and
// completed rows generate NULL and never collide, while two confirmed
// reservations for the same table and exact timestamp violate the index.
// This closes the check-then-insert race at the storage layer regardless
// of what the application checks before inserting.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS clients (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(100) NOT NULL,
			phone VARCHAR(20) NOT NULL,
			registered_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			is_active TINYINT(1) NOT NULL DEFAULT 1,
			PRIMARY KEY (id),
			UNIQUE KEY uq_clients_email (email)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS restaurants (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			name VARCHAR(100) NOT NULL,
			address TEXT NOT NULL,
			phone VARCHAR(20) NOT NULL,
			email VARCHAR(100) NULL,
			description TEXT NULL,
			is_active TINYINT(1) NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS environments (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			name VARCHAR(50) NOT NULL,
			description TEXT NULL,
			restaurant_id BIGINT UNSIGNED NOT NULL,
			is_active TINYINT(1) NOT NULL DEFAULT 1,
			PRIMARY KEY (id),
			KEY idx_environments_restaurant (restaurant_id),
			CONSTRAINT fk_environments_restaurant FOREIGN KEY (restaurant_id) REFERENCES restaurants (id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS restaurant_tables (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			number VARCHAR(10) NOT NULL,
			capacity INT NOT NULL,
			environment_id BIGINT UNSIGNED NOT NULL,
			is_active TINYINT(1) NOT NULL DEFAULT 1,
			notes TEXT NULL,
			PRIMARY KEY (id),
			KEY idx_tables_environment (environment_id),
			CONSTRAINT fk_tables_environment FOREIGN KEY (environment_id) REFERENCES environments (id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS reservations (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			client_id BIGINT UNSIGNED NOT NULL,
			table_id BIGINT UNSIGNED NOT NULL,
			reserved_at DATETIME NOT NULL,
			party_size INT NOT NULL,
			notes TEXT NULL,
			status ENUM('confirmed','cancelled','completed') NOT NULL DEFAULT 'confirmed',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			confirmed_slot TINYINT GENERATED ALWAYS AS (IF(status = 'confirmed', 1, NULL)) VIRTUAL,
			PRIMARY KEY (id),
			KEY idx_reservations_client (client_id),
			KEY idx_reservations_date (reserved_at),
			UNIQUE KEY uq_reservations_confirmed_slot (table_id, reserved_at, confirmed_slot),
			CONSTRAINT fk_reservations_client FOREIGN KEY (client_id) REFERENCES clients (id),
			CONSTRAINT fk_reservations_table FOREIGN KEY (table_id) REFERENCES restaurant_tables (id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS admins (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			email VARCHAR(100) NOT NULL,
			password_hash VARCHAR(100) NOT NULL,
			is_active TINYINT(1) NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			UNIQUE KEY uq_admins_email (email)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
