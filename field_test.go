package recordinfo_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	recordinfo "github.com/goliatone/go-recordinfo"
)

func TestMissingSentinel(t *testing.T) {
	if !recordinfo.IsMissing(recordinfo.Missing) {
		t.Fatal("expected IsMissing(Missing) to be true")
	}
	if recordinfo.IsMissing(nil) {
		t.Fatal("nil must not read as missing")
	}
	if recordinfo.IsMissing("") {
		t.Fatal("empty string must not read as missing")
	}
	if got := fmt.Sprint(recordinfo.Missing); got != "<missing>" {
		t.Fatalf("sentinel rendering mismatch: %q", got)
	}
}

func TestFieldDefaultValue(t *testing.T) {
	factory := func() any { return map[string]string{} }

	cases := []struct {
		name  string
		field recordinfo.Field
		want  any
	}{
		{
			name:  "no default",
			field: recordinfo.Field{Name: "id", Default: recordinfo.Missing},
			want:  recordinfo.Missing,
		},
		{
			name:  "static default",
			field: recordinfo.Field{Name: "retries", Default: 3},
			want:  3,
		},
		{
			name:  "factory only",
			field: recordinfo.Field{Name: "labels", Default: recordinfo.Missing, Factory: factory},
			want:  map[string]string{},
		},
		{
			name:  "static wins over factory",
			field: recordinfo.Field{Name: "retries", Default: 3, Factory: func() any { return 99 }},
			want:  3,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, tc.field.DefaultValue()); diff != "" {
				t.Fatalf("default value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFieldHasDefault(t *testing.T) {
	none := recordinfo.Field{Default: recordinfo.Missing}
	if none.HasDefault() {
		t.Fatal("field without default or factory must report false")
	}
	static := recordinfo.Field{Default: 0}
	if !static.HasDefault() {
		t.Fatal("zero-valued static default still counts as a default")
	}
	withFactory := recordinfo.Field{Default: recordinfo.Missing, Factory: func() any { return nil }}
	if !withFactory.HasDefault() {
		t.Fatal("factory counts as a default")
	}
}
