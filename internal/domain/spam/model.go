package spam

import (
	"regexp"
	"strings"
	"time"
)

// Confidence levels attached to a Verdict.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
	ConfidenceNone   Confidence = "none"
)

// Verdict reasons. They are for operator review only and must never be shown
// to the person who submitted the form.
const (
	ReasonHoneypot       = "automated submission detected"
	ReasonTooFast        = "submitted too quickly"
	ReasonPromotional    = "promotional content"
	ReasonTooManyLinks   = "too many links"
	ReasonSuspiciousMail = "suspicious email"
)

// MinFillTime is the shortest plausible time for a human to fill in a form.
const MinFillTime = 2 * time.Second

// MaxLinks is the number of URLs a message may carry before it is rejected.
const MaxLinks = 1

// Keywords are matched case-insensitively against the message body.
var Keywords = []string{
	// SEO and marketing solicitation
	"seo services", "seo agency", "search engine optimization",
	"improve your seo", "boost your ranking", "first page of google",
	"top of google", "google ranking", "search ranking",
	"backlinks", "link building", "domain authority",
	"website traffic", "organic traffic", "increase traffic",
	"marketing agency", "digital marketing services",
	"web design services", "redesign your website",

	// Cold outreach
	"we have completed", "review of your website",
	"noticed your website", "found your website",
	"struggling to appear", "visibility on search",
	"reply to this email", "suitable time for a call",
	"schedule a call", "book a call with",
	"free consultation", "free audit", "free analysis",

	// Financial and crypto
	"cryptocurrency", "bitcoin investment", "forex trading",
	"passive income", "make money online", "work from home opportunity",

	// Mass-mail salutations
	"dear sir/madam", "dear webmaster", "dear website owner",
	"to whom it may concern", "i am contacting you",
	"we are a leading", "we specialize in",
}

var urlPattern = regexp.MustCompile(`(?i)(https?://[^\s]+|www\.[^\s]+|[a-z0-9-]+\.(com|net|org|io|co|biz|info)[^\s]*)`)

var suspiciousEmailPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^[a-z]{2,4}\d{5,}@`),
	regexp.MustCompile(`(?i)@(tempmail|throwaway|guerrillamail|mailinator|10minutemail)`),
	regexp.MustCompile(`(?i)\.(xyz|top|click|loan|work|date|racing|download|stream)$`),
	regexp.MustCompile(`(?i)^[a-z0-9]{15,}@`),
}

// Input is one form submission as seen by the scorer.
// A zero FormLoadedAt means the load time is unknown.
type Input struct {
	Message      string
	Email        string
	Honeypot     string
	FormLoadedAt time.Time
}

// Verdict is the outcome of a single evaluation.
// Reason is empty when IsSpam is false.
type Verdict struct {
	IsSpam         bool
	Reason         string
	Confidence     Confidence
	MatchedKeyword string
}

// Detect runs the heuristic battery in priority order and returns the first match.
// PRE: none; missing fields are treated as empty
// POST: returns a non-spam verdict with ConfidenceNone when nothing matches
// INVARIANT: pure apart from the supplied clock value
func Detect(in Input, now time.Time) Verdict {
	if CheckHoneypot(in.Honeypot) {
		return Verdict{IsSpam: true, Reason: ReasonHoneypot, Confidence: ConfidenceHigh}
	}
	if CheckSubmissionSpeed(in.FormLoadedAt, now, MinFillTime) {
		return Verdict{IsSpam: true, Reason: ReasonTooFast, Confidence: ConfidenceHigh}
	}
	if kw, ok := CheckKeywords(in.Message); ok {
		return Verdict{IsSpam: true, Reason: ReasonPromotional, Confidence: ConfidenceMedium, MatchedKeyword: kw}
	}
	if CountURLs(in.Message) > MaxLinks {
		return Verdict{IsSpam: true, Reason: ReasonTooManyLinks, Confidence: ConfidenceMedium}
	}
	if CheckSuspiciousEmail(in.Email) {
		return Verdict{IsSpam: true, Reason: ReasonSuspiciousMail, Confidence: ConfidenceMedium}
	}
	return Verdict{Confidence: ConfidenceNone}
}

// CheckHoneypot reports whether the hidden field was filled in.
func CheckHoneypot(value string) bool {
	return strings.TrimSpace(value) != ""
}

// CheckSubmissionSpeed reports whether the form came back faster than minimum.
// An unknown load time never counts as too fast.
func CheckSubmissionSpeed(loadedAt, now time.Time, minimum time.Duration) bool {
	if loadedAt.IsZero() {
		return false
	}
	return now.Sub(loadedAt) < minimum
}

// CheckKeywords returns the first keyword found in message.
// PRE: none
// POST: returns ("", false) for an empty message
func CheckKeywords(message string) (string, bool) {
	if message == "" {
		return "", false
	}
	lower := strings.ToLower(message)
	for _, kw := range Keywords {
		if strings.Contains(lower, kw) {
			return kw, true
		}
	}
	return "", false
}

// CountURLs counts URL-like substrings in message.
func CountURLs(message string) int {
	if message == "" {
		return 0
	}
	return len(urlPattern.FindAllString(message, -1))
}

// CheckSuspiciousEmail reports whether email matches a throwaway or generated pattern.
func CheckSuspiciousEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	for _, p := range suspiciousEmailPatterns {
		if p.MatchString(email) {
			return true
		}
	}
	return false
}
