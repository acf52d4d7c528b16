package models

// AutoReviewRule maps a pass/fail outcome to the status a test instance should
// receive when the submitting user did not choose one explicitly.
type AutoReviewRule struct {
	Id       string
	PassFail PassFail
	StatusId string
}

type AutoReviewRuleSet []AutoReviewRule

// StatusFor returns the status configured for the given outcome, if any.
func (rules AutoReviewRuleSet) StatusFor(passFail PassFail) (string, bool) {
	for _, rule := range rules {
		if rule.PassFail == passFail {
			return rule.StatusId, true
		}
	}
	return "", false
}
