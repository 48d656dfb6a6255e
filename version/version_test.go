package version

import "testing"

func TestCheckAppBuild(t *testing.T) {
	tests := []struct {
		build    string
		expected string
	}{
		{build: "", expected: ""},
		{build: "dev-42", expected: "dev-42"},
		{build: "has space", expected: ""},
		{build: "rc.1", expected: ""},
	}

	for _, test := range tests {
		result := checkAppBuild(test.build)
		if result != test.expected {
			t.Errorf("checkAppBuild(%q): expected %q, got %q", test.build, test.expected, result)
		}
	}
}
