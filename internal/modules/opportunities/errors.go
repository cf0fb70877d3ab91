package opportunities

import "errors"

var ErrOpportunityNotFound = errors.New("opportunity not found")
