package hansard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveSpeaker(t *testing.T) {
	testCases := []struct {
		name         string
		inName       string
		inRole       string
		expectedName string
		expectedRole string
	}{
		{
			name:         "constituency in name field",
			inName:       "Mwala, UDA",
			inRole:       "Hon. Vincent Musau",
			expectedName: "Hon. Vincent Musau",
			expectedRole: "Mwala, UDA",
		},
		{
			name:         "title in name field",
			inName:       "The Temporary Speaker",
			inRole:       "Hon. (Dr.) Rachael Nyamai",
			expectedName: "Hon. (Dr.) Rachael Nyamai",
			expectedRole: "The Temporary Speaker",
		},
		{
			name:         "senator in role field",
			inName:       "The Deputy Speaker",
			inRole:       "Sen. Kathuri Murungi",
			expectedName: "The Deputy Speaker",
			expectedRole: "Sen. Kathuri Murungi",
		},
		{
			name:         "title and person folded into name",
			inName:       "The Speaker (Hon. Lusaka)",
			expectedName: "Hon. Lusaka",
			expectedRole: "The Speaker",
		},
		{
			name:         "person with constituency in parens",
			inName:       "Hon. John Mbadi (Suba South, ODM)",
			expectedName: "Hon. John Mbadi (Suba South, ODM)",
		},
		{
			name:         "already correct",
			inName:       "Hon. Kimani Ichung'wah",
			inRole:       "Kikuyu, UDA",
			expectedName: "Hon. Kimani Ichung'wah",
			expectedRole: "Kikuyu, UDA",
		},
		{
			name:         "trims whitespace",
			inName:       "  Hon. Members ",
			expectedName: "Hon. Members",
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			name, role := ResolveSpeaker(test.inName, test.inRole)
			require.Equal(t, test.expectedName, name)
			require.Equal(t, test.expectedRole, role)
		})
	}
}
