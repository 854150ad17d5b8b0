package storage

import "testing"

func TestDialectFor(t *testing.T) {
	tests := []struct {
		backend string
		want    dialect
		wantErr bool
	}{
		{backend: "postgres", want: dialectPostgres},
		{backend: "", want: dialectPostgres},
		{backend: "sqlite", want: dialectSQLite},
		{backend: "mysql", wantErr: true},
	}

	for _, tt := range tests {
		got, err := dialectFor(tt.backend)
		if tt.wantErr {
			if err == nil {
				t.Errorf("dialectFor(%q): expected error", tt.backend)
			}
			continue
		}
		if err != nil {
			t.Errorf("dialectFor(%q): %v", tt.backend, err)
			continue
		}
		if got != tt.want {
			t.Errorf("dialectFor(%q) = %v, want %v", tt.backend, got, tt.want)
		}
	}
}

func TestDialectPlaceholder(t *testing.T) {
	if got := dialectPostgres.placeholder(3); got != "$3" {
		t.Errorf("postgres placeholder = %q, want $3", got)
	}
	if got := dialectSQLite.placeholder(3); got != "?" {
		t.Errorf("sqlite placeholder = %q, want ?", got)
	}
}

func TestDialectInInt64(t *testing.T) {
	cond, args := dialectSQLite.inInt64("payment_link_id", []int64{1, 2, 3})
	if cond != "payment_link_id IN (?,?,?)" {
		t.Errorf("sqlite condition = %q", cond)
	}
	if len(args) != 3 || args[0] != int64(1) || args[2] != int64(3) {
		t.Errorf("sqlite args = %v", args)
	}

	cond, args = dialectPostgres.inInt64("payment_link_id", []int64{1, 2, 3})
	if cond != "payment_link_id = ANY($1)" {
		t.Errorf("postgres condition = %q", cond)
	}
	if len(args) != 1 {
		t.Errorf("postgres args = %v, want single array", args)
	}
}

func TestDialectInsertQuery(t *testing.T) {
	got := dialectPostgres.insertQuery("fee", []string{"id", "code"})
	want := "INSERT INTO fee (id, code) VALUES ($1, $2)"
	if got != want {
		t.Errorf("postgres insert = %q, want %q", got, want)
	}

	got = dialectSQLite.insertQuery("fee", []string{"id", "code"})
	want = "INSERT INTO fee (id, code) VALUES (?, ?)"
	if got != want {
		t.Errorf("sqlite insert = %q, want %q", got, want)
	}
}
