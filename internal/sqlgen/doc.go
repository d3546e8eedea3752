// Package sqlgen renders compiled records as SQL load and rollback scripts.
//
// Statements are emitted in dependency order: every scenario insert, then
// every scene insert, then every option insert. Two dialects are supported.
//
// DialectMySQL captures generated keys in session variables:
//
//	INSERT INTO scenario (...) VALUES (...);
//	SET @scenario_id_FIRE001 = LAST_INSERT_ID();
//
// Scripts in this dialect MUST run sequentially on a single connection.
// A pool or batching layer that reorders statements or spreads them over
// connections breaks the key correlation.
//
// DialectPortable writes client-generated UUIDv7 keys into every insert,
// so statements carry no session state and run on MySQL, PostgreSQL or
// SQLite alike.
//
// Rollback scripts delete in reverse dependency order: options, scenes,
// then the scenario row, all in one transaction.
package sqlgen
