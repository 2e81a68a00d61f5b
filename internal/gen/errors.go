package gen

import "errors"

// ErrNoCandidates marks an empty parent candidate set: a department with
// no teachers, a course with no enrollments. Fan-out units handle it by
// skipping (recorded in the run report); sequential stages that cannot
// proceed without parents treat it as fatal.
var ErrNoCandidates = errors.New("no candidate rows in parent set")
