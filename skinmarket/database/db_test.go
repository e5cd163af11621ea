package database

import "testing"

func Test_buildConnString(t *testing.T) {
	t.Setenv("PG_SSLMODE", "")
	got := buildConnString(DBConfig{User: "market", Password: "pw", Host: "localhost", Port: 5432, Database: "skins"})
	want := "postgres://market:pw@localhost:5432/skins?connect_timeout=5&sslmode=disable"
	if got != want {
		t.Errorf("buildConnString() = %q, want %q", got, want)
	}

	t.Setenv("PG_SSLMODE", "require")
	if got := sslMode(); got != "require" {
		t.Errorf("sslMode() = %q, want require", got)
	}
}
