package goldsync

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"bitbucket.org/cidacdata/elab_backend/config"
	"github.com/shopspring/decimal"
)

type goldClient struct {
	db      *sql.DB
	timeout time.Duration
}

func newGoldClient() (*goldClient, error) {
	db := config.GetGoldDB()
	if db == nil {
		return nil, errors.New("gold database not connected")
	}

	timeoutSeconds := 60
	if v := strings.TrimSpace(os.Getenv("GOLD_FETCH_TIMEOUT_SECONDS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeoutSeconds = n
		}
	}

	return &goldClient{
		db:      db,
		timeout: time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

// fetchTable reads up to limit rows (0 = unlimited) from one Gold table
// and converts every cell to a JSON-safe scalar. The table name is one of
// the GoldTables constants, never caller input.
func (c *goldClient) fetchTable(ctx context.Context, table string, limit int) ([]map[string]any, error) {
	query := fmt.Sprintf("SELECT * FROM %s", table)
	if limit > 0 {
		query = fmt.Sprintf("SELECT TOP (%d) * FROM %s", limit, table)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []map[string]any
	for rows.Next() {
		cells := make([]any, len(columns))
		refs := make([]any, len(columns))
		for i := range cells {
			refs[i] = &cells[i]
		}
		if err := rows.Scan(refs...); err != nil {
			return nil, err
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = jsonSafe(cells[i])
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// jsonSafe converts one SQL Server cell to a value that survives a JSON
// round trip without losing information. Numbers stay numeric; DECIMAL
// columns (which the driver hands over as byte strings) become strings so
// price precision is preserved exactly; dates become RFC 3339 strings;
// remaining binary becomes base64.
func jsonSafe(v any) any {
	switch value := v.(type) {
	case nil:
		return nil
	case bool, int64, float64, string:
		return value
	case int:
		return int64(value)
	case time.Time:
		return value.Format(time.RFC3339)
	case []byte:
		s := string(value)
		if _, err := decimal.NewFromString(s); err == nil {
			return s
		}
		return base64.StdEncoding.EncodeToString(value)
	default:
		return fmt.Sprint(value)
	}
}
