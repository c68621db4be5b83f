package db

import (
	"testing"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDsn(t *testing.T) {
	cases := []struct {
		name   string
		conf   Config
		driver string
		dsn    string
	}{
		{"postgres url", Config{Driver: Sqlite, Dsn: "postgresql://kanban:pw@db:5432/kanban"}, Postgresql, "postgresql://kanban:pw@db:5432/kanban"},
		{"sqlite url", Config{Driver: Postgresql, Dsn: "sqlite:///data/kanban.db"}, Sqlite, "data/kanban.db"},
		{"mysql url", Config{Driver: Sqlite, Dsn: "mysql://u:pw@db:3306/kanban"}, Mysql, "u:pw@tcp(db:3306)/kanban?parseTime=true"},
		{"mysql url charset", Config{Driver: Sqlite, Dsn: "mysql://u:pw@db/kanban?timeout=5s", Charset: "utf8mb4"}, Mysql, "u:pw@tcp(db)/kanban?parseTime=true&charset=utf8mb4&timeout=5s"},
		{"raw dsn", Config{Driver: Mysql, Dsn: "u:p@tcp(db:3306)/kanban"}, Mysql, "u:p@tcp(db:3306)/kanban"},
		{"sqlite file", Config{Driver: Sqlite, File: "kanban.db"}, Sqlite, "kanban.db"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dsn, err := c.conf.GetDsn()
			require.NoError(t, err)
			assert.Equal(t, c.dsn, dsn)
			assert.Equal(t, c.driver, c.conf.Driver)
			if c.driver == Mysql {
				parsed, err := mysqldrv.ParseDSN(dsn)
				require.NoError(t, err)
				assert.True(t, parsed.ParseTime)
				assert.Equal(t, "kanban", parsed.DBName)
			}
		})
	}

	_, err := (&Config{Driver: "oracle"}).GetDsn()
	assert.True(t, ErrDB.Has(err))

	_, err = (&Config{Dsn: "mysql:///kanban"}).GetDsn()
	assert.True(t, ErrDB.Has(err))
}
