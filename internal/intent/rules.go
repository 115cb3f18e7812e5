package intent

import (
	"regexp"
	"strings"
)

// rule ties a predicate over the normalized (lowercased, trimmed) input to
// the extractor producing the payload for its intent. Table position is
// priority: narrow patterns sit above the general ones that would otherwise
// shadow them, and the first predicate to match wins; dispatch never looks
// for a "best" match.
type rule struct {
	intent  Intent
	match   func(norm string) bool
	extract func(raw string) Payload
}

var (
	reDisplayVerb    = regexp.MustCompile(`\b(?:show|list|get|display|view)\b`)
	reStorageVerb    = regexp.MustCompile(`\b(?:store|save|add|remember|record|put|set)\b`)
	reCreateKnow     = regexp.MustCompile(`\bcreate\s+(?:a\s+)?knowledge\b`)
	reApprovalWord   = regexp.MustCompile(`\bapprovals?\b`)
	reKnowledgeNoun  = regexp.MustCompile(`\b(?:knowledge|entries|docs)\b`)
	reRequestNoun    = regexp.MustCompile(`\brequests?\b`)
	reQuestionOpener = regexp.MustCompile(`^(?:what's|what is|how do|find|search|look up|where|tell me|explain|describe)\b`)
	reDenyPrefix     = regexp.MustCompile(`^(?:deny|reject)\s+\S`)
	reWordFor        = regexp.MustCompile(`\bfor\b`)
	reWordNeed       = regexp.MustCompile(`\bneed\b`)
	reAskApproval    = regexp.MustCompile(`\b(?:request|need|submit)\s+(?:an?\s+)?approval\b`)
	reApprovalOf     = regexp.MustCompile(`\bapproval\s+(?:for|to|request)\b`)
	reApproveThing   = regexp.MustCompile(`\bapprove\s+(?:a|the|this|my)\b`)
	reCreateRequest  = regexp.MustCompile(`\b(?:create|make|new|submit|open)\s+(?:a\s+)?request\b`)
	reRequestTo      = regexp.MustCompile(`\brequest\s+to\b`)
	reScheduleVerb   = regexp.MustCompile(`\b(?:need|schedule|book|arrange)\b`)
	reStatusPrefix   = regexp.MustCompile(`^(?:status|health|check|ping)\b`)
)

// rules is the process-wide rule table, built once and never mutated.
//
// Ordering is part of the contract. The decision rules sit first so that
// "approve abc123" never reads as a new approval request; the knowledge rules
// carry negative guards so that approval/request vocabulary never leaks into
// knowledge creation or search. Do not reorder without revisiting every guard.
var rules = []rule{
	{
		// "approve <id>" — a decision on an existing approval. The guard words
		// keep phrasings like "approve a request for travel" out of this rule.
		intent: ApprovalsDecide,
		match: func(s string) bool {
			if !strings.HasPrefix(s, "approve ") {
				return false
			}
			if len(strings.Fields(s)) < 2 {
				return false
			}
			return !strings.Contains(s, "request") && !reWordFor.MatchString(s) && !reWordNeed.MatchString(s)
		},
		extract: extractApprovalsDecide,
	},
	{
		// "deny <id>" / "reject <id>".
		intent:  ApprovalsDecide,
		match:   func(s string) bool { return reDenyPrefix.MatchString(s) },
		extract: extractApprovalsDecide,
	},
	{
		// "show/list ... approvals", optionally qualified by "pending".
		intent: ApprovalsList,
		match: func(s string) bool {
			return reDisplayVerb.MatchString(s) && reApprovalWord.MatchString(s)
		},
		extract: extractApprovalsList,
	},
	{
		// "request/need/submit (an) approval", "approval for/to/request",
		// "approve a/the/this/my ...".
		intent: ApprovalRequest,
		match: func(s string) bool {
			return reAskApproval.MatchString(s) || reApprovalOf.MatchString(s) || reApproveThing.MatchString(s)
		},
		extract: extractApprovalRequest,
	},
	{
		// Storage verbs create knowledge entries, unless the input is really
		// about requests or approvals.
		intent: KnowledgeCreate,
		match: func(s string) bool {
			if !reStorageVerb.MatchString(s) && !reCreateKnow.MatchString(s) {
				return false
			}
			return !strings.Contains(s, "request") && !strings.Contains(s, "approval")
		},
		extract: extractKnowledgeCreate,
	},
	{
		// "show (all) knowledge/entries/docs".
		intent: KnowledgeList,
		match: func(s string) bool {
			return reDisplayVerb.MatchString(s) && reKnowledgeNoun.MatchString(s)
		},
		extract: func(string) Payload { return KnowledgeListPayload{} },
	},
	{
		// Question-style openers search the knowledge base. The guard keeps
		// "what are my pending approvals" style questions with the
		// approval/request rules' vocabulary out of search.
		intent: KnowledgeSearch,
		match: func(s string) bool {
			if !reQuestionOpener.MatchString(s) {
				return false
			}
			return !strings.Contains(s, "approval") && !strings.Contains(s, "request") && !strings.Contains(s, "pending")
		},
		extract: extractKnowledgeSearch,
	},
	{
		// "show (all) (open) requests".
		intent: RequestsList,
		match: func(s string) bool {
			return reDisplayVerb.MatchString(s) && reRequestNoun.MatchString(s)
		},
		extract: extractRequestsList,
	},
	{
		// "create/make/new/submit/open (a) request", "request to ...", or a
		// scheduling verb that isn't asking for an approval.
		intent: RequestCreate,
		match: func(s string) bool {
			if reCreateRequest.MatchString(s) || reRequestTo.MatchString(s) {
				return true
			}
			return reScheduleVerb.MatchString(s) && !strings.Contains(s, "approval")
		},
		extract: extractRequestCreate,
	},
	{
		// "status", "health", "check ...", "ping".
		intent:  Status,
		match:   func(s string) bool { return reStatusPrefix.MatchString(s) },
		extract: func(string) Payload { return StatusPayload{} },
	},
}
