package sqlinfo

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-modelinput/pkg/column"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mk, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mk
}

func TestMySQLColumn(t *testing.T) {
	db, mk := newMock(t)
	mk.ExpectQuery(`(?s)SELECT COLUMN_TYPE, .+FROM information_schema.COLUMNS`).
		WithArgs("products", "price").
		WillReturnRows(sqlmock.NewRows([]string{
			"COLUMN_TYPE", "CHARACTER_MAXIMUM_LENGTH", "NUMERIC_PRECISION", "NUMERIC_SCALE",
			"IS_NULLABLE", "COLUMN_DEFAULT", "EXTRA", "COLUMN_COMMENT",
		}).AddRow("decimal(5,2) unsigned", nil, int64(5), int64(2), "NO", "0.00", "", "Unit price"))

	p, err := New(db, MySQL)
	require.NoError(t, err)

	got, err := p.Column(context.Background(), "products", "price")
	require.NoError(t, err)
	require.Equal(t, column.Column{
		Name:      "price",
		Type:      column.TypeDecimal,
		Precision: 5,
		Scale:     2,
		Unsigned:  true,
		NotNull:   true,
		Default:   "0.00",
		Comment:   "Unit price",
	}, got)
	require.NoError(t, mk.ExpectationsWereMet())
}

func TestMySQLFixedCharAndAutoIncrement(t *testing.T) {
	db, mk := newMock(t)
	rows := []string{
		"COLUMN_TYPE", "CHARACTER_MAXIMUM_LENGTH", "NUMERIC_PRECISION", "NUMERIC_SCALE",
		"IS_NULLABLE", "COLUMN_DEFAULT", "EXTRA", "COLUMN_COMMENT",
	}
	mk.ExpectQuery("FROM information_schema.COLUMNS").
		WithArgs("countries", "code").
		WillReturnRows(sqlmock.NewRows(rows).AddRow("char(2)", int64(2), nil, nil, "YES", nil, "", ""))
	mk.ExpectQuery("FROM information_schema.COLUMNS").
		WithArgs("countries", "id").
		WillReturnRows(sqlmock.NewRows(rows).AddRow("bigint unsigned", nil, int64(20), int64(0), "NO", nil, "auto_increment", ""))

	p, err := New(db, MySQL)
	require.NoError(t, err)

	code, err := p.Column(context.Background(), "countries", "code")
	require.NoError(t, err)
	require.Equal(t, column.TypeString, code.Type)
	require.True(t, code.Fixed)
	require.Equal(t, 2, *code.Length)
	require.Nil(t, code.Default)

	id, err := p.Column(context.Background(), "countries", "id")
	require.NoError(t, err)
	require.Equal(t, column.TypeBigInt, id.Type)
	require.True(t, id.AutoIncrement)
	require.True(t, id.Unsigned)
	require.Equal(t, 20, id.Precision)
	require.NoError(t, mk.ExpectationsWereMet())
}

func TestPostgresColumn(t *testing.T) {
	db, mk := newMock(t)
	rows := []string{
		"data_type", "udt_name", "character_maximum_length", "numeric_precision", "numeric_scale",
		"is_nullable", "column_default", "is_identity", "col_description",
	}
	mk.ExpectQuery(`FROM information_schema.columns c\s+WHERE c.table_schema = current_schema\(\)`).
		WithArgs("posts", "status").
		WillReturnRows(sqlmock.NewRows(rows).AddRow("character varying", "varchar", int64(20), nil, nil, "NO", "'draft'::character varying", "NO", "Workflow state"))
	mk.ExpectQuery("FROM information_schema.columns").
		WithArgs("posts", "id").
		WillReturnRows(sqlmock.NewRows(rows).AddRow("integer", "int4", nil, int64(32), int64(0), "NO", "nextval('posts_id_seq'::regclass)", "NO", nil))
	mk.ExpectQuery("FROM information_schema.columns").
		WithArgs("posts", "tags").
		WillReturnRows(sqlmock.NewRows(rows).AddRow("ARRAY", "_text", nil, nil, nil, "YES", nil, "NO", nil))

	p, err := New(db, Postgres)
	require.NoError(t, err)

	status, err := p.Column(context.Background(), "posts", "status")
	require.NoError(t, err)
	require.Equal(t, column.Column{
		Name:    "status",
		Type:    column.TypeString,
		Length:  column.IntPtr(20),
		NotNull: true,
		Default: "draft",
		Comment: "Workflow state",
	}, status)

	id, err := p.Column(context.Background(), "posts", "id")
	require.NoError(t, err)
	require.Equal(t, column.TypeInteger, id.Type)
	require.Equal(t, 10, id.Precision)
	require.True(t, id.AutoIncrement)
	require.Nil(t, id.Default)

	tags, err := p.Column(context.Background(), "posts", "tags")
	require.NoError(t, err)
	require.Equal(t, column.TypeArray, tags.Type)
	require.NoError(t, mk.ExpectationsWereMet())
}

func TestSQLiteColumn(t *testing.T) {
	db, mk := newMock(t)
	rows := []string{"type", "notnull", "dflt_value", "pk"}
	mk.ExpectQuery(`FROM pragma_table_info\(\?\) WHERE name = \?`).
		WithArgs("users", "name").
		WillReturnRows(sqlmock.NewRows(rows).AddRow("VARCHAR(64)", int64(1), "'anon'", int64(0)))
	mk.ExpectQuery("FROM pragma_table_info").
		WithArgs("users", "balance").
		WillReturnRows(sqlmock.NewRows(rows).AddRow("NUMERIC(12,4)", int64(0), nil, int64(0)))
	mk.ExpectQuery("FROM pragma_table_info").
		WithArgs("users", "id").
		WillReturnRows(sqlmock.NewRows(rows).AddRow("INTEGER", int64(0), nil, int64(1)))

	p, err := New(db, SQLite)
	require.NoError(t, err)

	name, err := p.Column(context.Background(), "users", "name")
	require.NoError(t, err)
	require.Equal(t, column.Column{
		Name:    "name",
		Type:    column.TypeString,
		Length:  column.IntPtr(64),
		NotNull: true,
		Default: "anon",
	}, name)

	balance, err := p.Column(context.Background(), "users", "balance")
	require.NoError(t, err)
	require.Equal(t, column.TypeDecimal, balance.Type)
	require.Equal(t, 12, balance.Precision)
	require.Equal(t, 4, balance.Scale)

	id, err := p.Column(context.Background(), "users", "id")
	require.NoError(t, err)
	require.True(t, id.AutoIncrement)
	require.Equal(t, 10, id.Precision)
	require.NoError(t, mk.ExpectationsWereMet())
}

func TestColumnNotFound(t *testing.T) {
	db, mk := newMock(t)
	mk.ExpectQuery("FROM pragma_table_info").
		WithArgs("users", "missing").
		WillReturnRows(sqlmock.NewRows([]string{"type", "notnull", "dflt_value", "pk"}))

	p, err := New(db, SQLite)
	require.NoError(t, err)

	_, err = p.Column(context.Background(), "users", "missing")
	require.True(t, errors.Is(err, column.ErrColumnNotFound), "got %v", err)
	require.NoError(t, mk.ExpectationsWereMet())
}

func TestQueryErrorIsWrapped(t *testing.T) {
	db, mk := newMock(t)
	boom := errors.New("connection reset")
	mk.ExpectQuery("FROM information_schema.COLUMNS").WillReturnError(boom)

	p, err := New(db, MySQL)
	require.NoError(t, err)

	_, err = p.Column(context.Background(), "users", "email")
	require.ErrorIs(t, err, boom)
	require.False(t, errors.Is(err, column.ErrColumnNotFound))
}

func TestDialectFromDriver(t *testing.T) {
	cases := map[string]Dialect{
		"mysql":    MySQL,
		"postgres": Postgres,
		"pgx":      Postgres,
		"sqlite":   SQLite,
		"sqlite3":  SQLite,
	}
	for driver, want := range cases {
		got, err := DialectFromDriver(driver)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := DialectFromDriver("oracle")
	require.Error(t, err)

	_, err = New(nil, MySQL)
	require.Error(t, err)
}

func TestPostgresDefault(t *testing.T) {
	require.Equal(t, "it's", postgresDefault("'it''s'::text"))
	require.Nil(t, postgresDefault("NULL::character varying"))
	require.Equal(t, "now()", postgresDefault("now()"))
	require.Equal(t, "42", postgresDefault("42"))
}
