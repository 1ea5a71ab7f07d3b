package junitxml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
)

var (
	// ErrInvalidReport is returned when the content can't be parsed as a junit xml test report
	ErrInvalidReport = errors.New("the content is not a valid junit xml test report")
)

// TestSuites is a junit xml report root element wrapping one or more test suites; the
// aggregate attributes are optional, many producers only set them per suite
type TestSuites struct {
	XMLName  xml.Name     `xml:"testsuites"`
	Tests    int          `xml:"tests,attr"`
	Failures int          `xml:"failures,attr"`
	Skipped  int          `xml:"skipped,attr"`
	Suites   []*TestSuite `xml:"testsuite"`
}

// TestSuite is a single junit test suite, potentially holding nested child suites
type TestSuite struct {
	XMLName  xml.Name     `xml:"testsuite"`
	Name     string       `xml:"name,attr"`
	Tests    int          `xml:"tests,attr"`
	Failures int          `xml:"failures,attr"`
	Skipped  int          `xml:"skipped,attr"`
	Cases    []*TestCase  `xml:"testcase"`
	Children []*TestSuite `xml:"testsuite"`
}

// TestCase is a single junit test case
type TestCase struct {
	XMLName   xml.Name     `xml:"testcase"`
	Name      string       `xml:"name,attr"`
	Classname string       `xml:"classname,attr"`
	Skipped   *CaseSkipped `xml:"skipped"`
	Failure   *CaseFailure `xml:"failure"`
}

// CaseSkipped holds the reason a test case was skipped
type CaseSkipped struct {
	Message string `xml:"message,attr"`
}

// CaseFailure holds the failure message of a failed test case
type CaseFailure struct {
	Message string `xml:"message,attr"`
	Output  string `xml:",chardata"`
}

// Case is the trimmed per-testcase view kept as raw payload on a test result record
type Case struct {
	Name      string `json:"name"`
	Classname string `json:"classname,omitempty"`
	Status    string `json:"status"`
}

// Summary holds the aggregate outcome counts of a test report
type Summary struct {
	TotalTests   int
	PassedTests  int
	FailedTests  int
	SkippedTests int
	Cases        []Case
}

// Parse reads a junit xml report and returns its aggregate pass/fail/skip counts; it
// prefers the totals on the testsuites root and falls back to summing all testsuite
// elements when the root carries no totals or the root element is a bare testsuite
func Parse(content []byte) (summary Summary, err error) {

	var report TestSuites
	if err = unmarshalStrict(content, &report); err != nil {

		// some producers emit a bare <testsuite> root without the wrapping element
		var suite TestSuite
		if suiteErr := unmarshalStrict(content, &suite); suiteErr != nil {
			return summary, fmt.Errorf("%w: %v", ErrInvalidReport, err)
		}
		report = TestSuites{Suites: []*TestSuite{&suite}}
	}

	summary.TotalTests = report.Tests
	summary.FailedTests = report.Failures
	summary.SkippedTests = report.Skipped

	if summary.TotalTests == 0 {
		for _, suite := range report.Suites {
			tests, failures, skipped := sumSuite(suite)
			summary.TotalTests += tests
			summary.FailedTests += failures
			summary.SkippedTests += skipped
		}
	}

	summary.PassedTests = summary.TotalTests - summary.FailedTests - summary.SkippedTests
	if summary.PassedTests < 0 {
		summary.PassedTests = 0
	}

	for _, suite := range report.Suites {
		summary.Cases = append(summary.Cases, collectCases(suite)...)
	}

	return summary, nil
}

func sumSuite(suite *TestSuite) (tests, failures, skipped int) {
	tests = suite.Tests
	failures = suite.Failures
	skipped = suite.Skipped

	for _, child := range suite.Children {
		childTests, childFailures, childSkipped := sumSuite(child)
		tests += childTests
		failures += childFailures
		skipped += childSkipped
	}

	return
}

func collectCases(suite *TestSuite) (cases []Case) {

	for _, c := range suite.Cases {
		status := "passed"
		if c.Failure != nil {
			status = "failed"
		} else if c.Skipped != nil {
			status = "skipped"
		}
		cases = append(cases, Case{Name: c.Name, Classname: c.Classname, Status: status})
	}

	for _, child := range suite.Children {
		cases = append(cases, collectCases(child)...)
	}

	return
}

func unmarshalStrict(content []byte, target interface{}) error {
	decoder := xml.NewDecoder(bytes.NewReader(content))
	decoder.Strict = true
	return decoder.Decode(target)
}
