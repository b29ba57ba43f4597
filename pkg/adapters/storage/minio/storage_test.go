package minio

import "testing"

func TestKeyFor(t *testing.T) {
	s := &Storage{bucket: "teachshare"}

	tests := []struct {
		name    string
		fileURL string
		wantKey string
		wantOK  bool
	}{
		{
			name:    "path style",
			fileURL: "http://localhost:9000/teachshare/1700000000_notes.pdf",
			wantKey: "1700000000_notes.pdf",
			wantOK:  true,
		},
		{
			name:    "virtual host style",
			fileURL: "https://teachshare.s3.amazonaws.com/1700000000_notes.pdf",
			wantKey: "1700000000_notes.pdf",
			wantOK:  true,
		},
		{
			name:    "escaped key",
			fileURL: "http://localhost:9000/teachshare/1700000000_a%20b.pdf",
			wantKey: "1700000000_a b.pdf",
			wantOK:  true,
		},
		{
			name:    "foreign bucket path",
			fileURL: "http://localhost:9000/other-bucket/file.pdf",
			wantOK:  false,
		},
		{
			name:    "foreign host",
			fileURL: "https://example.com/some/file.pdf",
			wantOK:  false,
		},
		{
			name:    "bucket but no key",
			fileURL: "http://localhost:9000/teachshare/",
			wantOK:  false,
		},
		{
			name:    "not a url",
			fileURL: "://broken",
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := s.KeyFor(tt.fileURL)
			if ok != tt.wantOK {
				t.Fatalf("KeyFor(%q) ok = %v, want %v", tt.fileURL, ok, tt.wantOK)
			}
			if ok && key != tt.wantKey {
				t.Errorf("KeyFor(%q) key = %q, want %q", tt.fileURL, key, tt.wantKey)
			}
		})
	}
}
