package intent

import (
	"regexp"
	"strconv"
	"strings"
)

// Extractors are total functions over the raw input: they never fail, and any
// field they cannot derive falls back to a documented default. Lead-in
// phrases are removed by ordered textual substitution (each pattern strips
// its first occurrence, in list order), so for inputs repeating a lead-in
// phrase the outcome is substitution-order-dependent.

const (
	defaultEntryTitle    = "New Entry"
	defaultApprovalTitle = "Approval Request"
)

var (
	// "store our X", "save the Y", "remember this Z" — storage verb plus any
	// run of filler words.
	reStorageLead = regexp.MustCompile(`(?i)^(?:please\s+)?(?:store|save|add|remember|record|put|set|create)\s+(?:(?:a|an|our|the|my|this)\b\s*)*`)

	reSearchLead  = regexp.MustCompile(`(?i)^(?:what's|what is|how do|find|search\s+for|search|look up|where's|where|tell me about|tell me|explain|describe)\s+`)
	reArticleLead = regexp.MustCompile(`(?i)^(?:our|the|my|a|an)\s+`)

	// $5,000 / $5000 / $49.99 — dollar sign, optional thousands separators,
	// optional two-decimal cents group.
	reAmount = regexp.MustCompile(`\$(\d{1,3}(?:,\d{3})*(?:\.\d{2})?|\d+(?:\.\d{2})?)`)

	approvalLeadPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:i\s+)?(?:need|request|submit|want)\s+(?:an?\s+)?approval\s+(?:for|to)\s+`),
		regexp.MustCompile(`(?i)(?:i\s+)?(?:need|request|submit|want)\s+(?:an?\s+)?approval\s*`),
		regexp.MustCompile(`(?i)approve\s+(?:a|the|this|my)\s+`),
		regexp.MustCompile(`(?i)approval\s+(?:for|to)\s+`),
	}

	// Re-derivation patterns used when the full lead-in strip leaves nothing
	// usable: only the core verb phrase is removed.
	approvalCorePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:need|request|submit|want)\s+(?:an?\s+)?approval`),
	}

	requestLeadPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:please\s+)?(?:create|make|submit|open|file)\s+(?:a\s+)?(?:new\s+)?request\s+(?:to|for)\s+`),
		regexp.MustCompile(`(?i)(?:please\s+)?(?:create|make|submit|open|file)\s+(?:a\s+)?(?:new\s+)?request\s*`),
		regexp.MustCompile(`(?i)^new\s+request:?\s*`),
		regexp.MustCompile(`(?i)^request\s+to\s+`),
		regexp.MustCompile(`(?i)^(?:i\s+)?need\s+to\s+`),
		regexp.MustCompile(`(?i)^(?:i\s+)?need\s+`),
	}

	reUrgentWords = regexp.MustCompile(`(?i)\b(?:urgent(?:ly)?|asap|critical(?:ly)?|emergency)\b`)
	reHighWords   = regexp.MustCompile(`(?i)\bhigh(?:\s+priority)?\b`)
	reLowWords    = regexp.MustCompile(`(?i)\blow(?:\s+priority)?\b`)

	reSpaces = regexp.MustCompile(`\s+`)
)

// stripFirst removes the first occurrence of each pattern, in order.
func stripFirst(s string, patterns []*regexp.Regexp) string {
	for _, re := range patterns {
		if loc := re.FindStringIndex(s); loc != nil {
			s = s[:loc[0]] + s[loc[1]:]
		}
	}
	return strings.TrimSpace(s)
}

// tidy collapses runs of whitespace left behind by phrase stripping.
func tidy(s string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

// firstWords returns up to n leading whitespace-separated words of s.
func firstWords(s string, n int) string {
	fields := strings.Fields(s)
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.Join(fields, " ")
}

// extractKnowledgeCreate looks for a "<lead-in> <title>: <content>" shape.
// With a colon the left side is the title and the right side the content;
// without one the stripped remainder is the content and its first five words
// the title. Empty remainders fall back to a placeholder title with the full
// original input as content.
func extractKnowledgeCreate(raw string) Payload {
	in := strings.TrimSpace(raw)
	rest := strings.TrimSpace(reStorageLead.ReplaceAllString(in, ""))

	if title, content, ok := strings.Cut(rest, ":"); ok {
		title = strings.TrimSpace(title)
		content = strings.TrimSpace(content)
		if title == "" {
			title = defaultEntryTitle
		}
		if content == "" {
			content = in
		}
		return KnowledgeCreatePayload{Title: title, Content: content}
	}

	if rest == "" {
		return KnowledgeCreatePayload{Title: defaultEntryTitle, Content: in}
	}
	return KnowledgeCreatePayload{Title: firstWords(rest, 5), Content: rest}
}

// extractKnowledgeSearch strips the question phrase, a leading article, and a
// trailing question mark. A remainder under two characters falls back to the
// original input with only the question mark stripped.
func extractKnowledgeSearch(raw string) Payload {
	in := strings.TrimSpace(raw)
	q := reSearchLead.ReplaceAllString(in, "")
	q = reArticleLead.ReplaceAllString(q, "")
	q = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(q), "?"))
	if len(q) < 2 {
		q = strings.TrimSpace(strings.TrimSuffix(in, "?"))
	}
	return KnowledgeSearchPayload{Query: q}
}

// extractApprovalRequest derives a title by stripping the approval lead-in and
// scans separately for a currency amount. The description is always the full
// original input.
func extractApprovalRequest(raw string) Payload {
	in := strings.TrimSpace(raw)

	var amount *float64
	if m := reAmount.FindStringSubmatch(in); m != nil {
		if v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
			amount = &v
		}
	}

	title := stripFirst(in, approvalLeadPatterns)
	if len(title) < 3 {
		title = stripFirst(in, approvalCorePatterns)
	}
	if title == "" {
		title = defaultApprovalTitle
	}

	return ApprovalRequestPayload{Title: tidy(title), Description: in, Amount: amount}
}

// extractApprovalsList sets the status filter to "pending" iff the word
// appears anywhere; otherwise all statuses are listed.
func extractApprovalsList(raw string) Payload {
	if strings.Contains(strings.ToLower(raw), "pending") {
		return ApprovalsListPayload{Status: "pending"}
	}
	return ApprovalsListPayload{}
}

// extractApprovalsDecide takes the token immediately following the decision
// verb as the identifier.
func extractApprovalsDecide(raw string) Payload {
	fields := strings.Fields(raw)
	p := ApprovalsDecidePayload{Decision: "approved"}
	if len(fields) > 0 {
		switch strings.ToLower(fields[0]) {
		case "deny", "reject":
			p.Decision = "denied"
		}
	}
	if len(fields) > 1 {
		p.ID = fields[1]
	}
	return p
}

// extractRequestCreate derives a title by stripping the create/request
// lead-in, infers priority from urgency words, and strips whichever urgency
// words matched from the title. Titles under three characters fall back to
// the entire trimmed input. The description is always the full original input.
func extractRequestCreate(raw string) Payload {
	in := strings.TrimSpace(raw)
	norm := strings.ToLower(in)

	priority := "medium"
	var matched *regexp.Regexp
	switch {
	case strings.Contains(norm, "urgent"), strings.Contains(norm, "asap"),
		strings.Contains(norm, "critical"), strings.Contains(norm, "emergency"):
		priority, matched = "critical", reUrgentWords
	case reHighWords.MatchString(norm):
		priority, matched = "high", reHighWords
	case reLowWords.MatchString(norm):
		priority, matched = "low", reLowWords
	}

	title := stripFirst(in, requestLeadPatterns)
	if matched != nil {
		title = matched.ReplaceAllString(title, "")
	}
	title = tidy(strings.Trim(title, " ,.-"))
	if len(title) < 3 {
		title = in
	}

	return RequestCreatePayload{Title: title, Description: in, Priority: priority}
}

// extractRequestsList sets the status filter to "open" iff an open-ish word
// appears; otherwise all statuses are listed.
func extractRequestsList(raw string) Payload {
	norm := strings.ToLower(raw)
	for _, w := range []string{"open", "pending", "active"} {
		if strings.Contains(norm, w) {
			return RequestsListPayload{Status: "open"}
		}
	}
	return RequestsListPayload{}
}
