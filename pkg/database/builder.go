package database

import "github.com/Masterminds/squirrel"

// PSQL builds PostgreSQL statements with $n placeholders.
var PSQL = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
