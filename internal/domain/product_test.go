package domain

import "testing"

func TestValidateFieldValues(t *testing.T) {
	fields := []CustomField{
		{Name: "githubProfile", Label: "GitHub Profile", Type: FieldTypeLink, IsRequired: true},
		{Name: "bio", Label: "Bio", Type: FieldTypeText},
		{Name: "resume", Label: "Resume", Type: FieldTypeFile, AcceptedFileTypes: ".pdf,.docx"},
		{Name: "skills", Label: "Skills", Type: FieldTypeArray},
	}

	tests := []struct {
		name   string
		values map[string]any
		want   string
	}{
		{
			name:   "all valid",
			values: map[string]any{"githubProfile": "https://github.com/octocat", "bio": "hi", "resume": "cv.PDF", "skills": []any{"go", "sql"}},
		},
		{
			name:   "optional fields omitted",
			values: map[string]any{"githubProfile": "http://github.com/octocat"},
		},
		{
			name:   "required missing",
			values: map[string]any{"bio": "hi"},
			want:   "GitHub Profile is required",
		},
		{
			name:   "required blank",
			values: map[string]any{"githubProfile": "  "},
			want:   "GitHub Profile is required",
		},
		{
			name:   "relative link",
			values: map[string]any{"githubProfile": "/octocat"},
			want:   "GitHub Profile must be an http(s) link",
		},
		{
			name:   "ftp link",
			values: map[string]any{"githubProfile": "ftp://github.com/octocat"},
			want:   "GitHub Profile must be an http(s) link",
		},
		{
			name:   "text of wrong kind",
			values: map[string]any{"githubProfile": "https://github.com", "bio": 42.0},
			want:   "Bio must be text",
		},
		{
			name:   "file extension not accepted",
			values: map[string]any{"githubProfile": "https://github.com", "resume": "cv.exe"},
			want:   "Resume accepts only .pdf,.docx",
		},
		{
			name:   "array with non-string item",
			values: map[string]any{"githubProfile": "https://github.com", "skills": []any{"go", 1.0}},
			want:   "Skills must be a list of text values",
		},
		{
			name:   "array of wrong kind",
			values: map[string]any{"githubProfile": "https://github.com", "skills": "go"},
			want:   "Skills must be a list",
		},
		{
			name:   "unknown key",
			values: map[string]any{"githubProfile": "https://github.com", "twitter": "@octocat"},
			want:   `Unknown field "twitter"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFieldValues(fields, tt.values)
			got := ""
			if err != nil {
				got = err.Error()
				if !IsValidation(err) {
					t.Errorf("error %T is not a ValidationError", err)
				}
			}
			if got != tt.want {
				t.Errorf("ValidateFieldValues() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateFieldValuesWildcardFile(t *testing.T) {
	fields := []CustomField{{Name: "attachment", Label: "Attachment", Type: FieldTypeFile, AcceptedFileTypes: "*"}}
	if err := ValidateFieldValues(fields, map[string]any{"attachment": "anything.bin"}); err != nil {
		t.Errorf("ValidateFieldValues() = %v, want nil", err)
	}
}
