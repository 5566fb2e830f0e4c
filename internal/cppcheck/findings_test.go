package cppcheck

import "testing"

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<results version="2">
  <cppcheck version="2.13.0"/>
  <errors>
    <error id="unusedVariable" severity="style" msg="Unused variable: x" verbose="Unused variable: x">
      <location file="main.c" line="3" column="9"/>
    </error>
    <error id="nullPointer" severity="error" msg="Null pointer dereference: p" verbose="Null pointer dereference: p" cwe="476">
      <location file="util.c" line="14" column="5"/>
      <location file="util.c" line="10" column="12"/>
    </error>
    <error id="checkersReport" severity="information" msg="Active checkers: 110/592"/>
  </errors>
</results>`

func TestParseReport(t *testing.T) {
	report, err := ParseReport([]byte(sampleXML))
	if err != nil {
		t.Fatalf("ParseReport() error: %v", err)
	}

	if report.Cppcheck.Version != "2.13.0" {
		t.Errorf("tool version = %q", report.Cppcheck.Version)
	}
	if len(report.Findings) != 3 {
		t.Fatalf("findings = %d, want 3", len(report.Findings))
	}

	f := report.Findings[1]
	if f.ID != "nullPointer" || f.Severity != SeverityError || f.CWE != "476" {
		t.Errorf("finding = %+v", f)
	}
	loc := f.Primary()
	if loc == nil || loc.File != "util.c" || loc.Line != 14 {
		t.Errorf("primary location = %+v", loc)
	}

	if report.Findings[2].Primary() != nil {
		t.Error("finding without locations should have nil primary")
	}
}

func TestParseReportRejectsUnknownVersion(t *testing.T) {
	_, err := ParseReport([]byte(`<results version="1"><error id="a" severity="error" msg="m"/></results>`))
	if err == nil {
		t.Fatal("expected error for XML version 1")
	}
}

func TestParseReportMalformed(t *testing.T) {
	_, err := ParseReport([]byte("not xml at all"))
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestCountBySeverity(t *testing.T) {
	report, err := ParseReport([]byte(sampleXML))
	if err != nil {
		t.Fatalf("ParseReport() error: %v", err)
	}

	counts := report.CountBySeverity()
	if counts[SeverityError] != 1 || counts[SeverityStyle] != 1 || counts[SeverityInformation] != 1 {
		t.Errorf("counts = %v", counts)
	}
}
