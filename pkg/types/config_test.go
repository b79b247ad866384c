package types

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty backend returns ErrBackendEmpty",
			config:  Config{Backend: "", DBPath: "/tmp/survey.db"},
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend returns ErrBackendUnknown",
			config:  Config{Backend: "mariadb", DBPath: "/tmp/survey.db"},
			wantErr: ErrBackendUnknown,
		},
		{
			name:    "empty db path returns ErrDBPathEmpty",
			config:  Config{Backend: "sqlite", DBPath: ""},
			wantErr: ErrDBPathEmpty,
		},
		{
			name:    "valid sqlite config",
			config:  Config{Backend: "sqlite", DBPath: "/tmp/survey.db"},
			wantErr: nil,
		},
		{
			name:    "target and snapshot dir are optional",
			config:  Config{Backend: "sqlite", DBPath: "/tmp/survey.db", TargetPath: "", SnapshotDir: ""},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestPredicateValidate(t *testing.T) {
	if err := (Predicate{Field: "", Values: []string{"a"}}).Validate(); !errors.Is(err, ErrInvalidPredicate) {
		t.Fatalf("expected ErrInvalidPredicate, got %v", err)
	}
	if err := (Predicate{Field: "missions_id"}).Validate(); err != nil {
		t.Fatalf("empty value set should be valid, got %v", err)
	}
}
