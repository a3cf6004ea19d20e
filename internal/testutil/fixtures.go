package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// HiveScript is a small HiveQL batch script exercising every statement kind.
const HiveScript = `-- Daily order rollup
\set hivevar:RUN_DATE=2020-01-01

CREATE TABLE IF NOT EXISTS ${TEMP_DB}.daily_orders LIKE ${SRC_DB}.orders;
DROP TABLE IF EXISTS ${TEMP_DB}.stale;

INSERT OVERWRITE TABLE ${TEMP_DB}.daily_orders
SELECT Y.` + "`(rank)?+.+`" + ` FROM (
  SELECT o.*, rank() OVER (PARTITION BY customer_id ORDER BY ts DESC) AS rank
  FROM ${SRC_DB}.orders o
  WHERE dt = '${RUN_DATE}'
) Y WHERE rank = 1;

-- summary
SELECT count(*) FROM ${TEMP_DB}.daily_orders;
`

// RedshiftScript is a small Redshift batch script.
const RedshiftScript = `-- Active users
SELECT * FROM t WHERE id = :user_id;

DROP TABLE IF EXISTS :TEMP_DB.scratch;
INSERT OVERWRITE TABLE :stage.active_users
SELECT user_id FROM :src.events
WHERE event_date BETWEEN :start_date AND :end_date;
`

// WriteScript writes content to name inside a fresh temporary directory and
// returns the file path.
func WriteScript(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// ReadFile returns the content of path, failing the test on error.
func ReadFile(t testing.TB, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(b)
}
