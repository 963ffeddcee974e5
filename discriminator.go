package depcontainer

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// A Discriminator decides whether an Equals rule that did not match the
// attribute directly is satisfied by the type of a polymorphic relation.
// It is consulted only on display, and only for resources that are not
// plain keyed data.
type Discriminator interface {
	Match(r Resource, property string, operand any) bool
}

// DiscriminatorFunc adapts a function to a Discriminator.
type DiscriminatorFunc func(r Resource, property string, operand any) bool

func (f DiscriminatorFunc) Match(r Resource, property string, operand any) bool {
	return f(r, property, operand)
}

// MorphType matches when the type attribute of a polymorphic relation names
// a class in a namespace whose last segment is the operand. With the
// defaults, an Equals rule on "role" with operand "Admin" matches a resource
// whose "role_type" is `App\Models\Admin`.
type MorphType struct {
	// Appended to the property to name the type attribute. Default "_type".
	Suffix string
	// Namespace separator. Default `\`.
	Separator string
}

func (m MorphType) Match(r Resource, property string, operand any) bool {
	suffix, sep := m.Suffix, m.Separator
	if suffix == "" {
		suffix = "_type"
	}
	if sep == "" {
		sep = `\`
	}
	typ, ok := discriminatorValue(r, property+suffix)
	if !ok {
		return false
	}
	return strings.HasSuffix(typ, sep+fmt.Sprint(operand))
}

// MorphPattern matches the type attribute (property + Suffix) against a
// regular expression built from Template, in which each %s is replaced by
// the regexp-escaped operand. For example `(?i)\\%s$` matches the class name
// without regard to case.
type MorphPattern struct {
	Template string
	// Appended to the property to name the type attribute. Default "_type".
	Suffix string
}

func (m MorphPattern) Match(r Resource, property string, operand any) bool {
	suffix := m.Suffix
	if suffix == "" {
		suffix = "_type"
	}
	typ, ok := discriminatorValue(r, property+suffix)
	if !ok {
		return false
	}
	op := regexp2.Escape(fmt.Sprint(operand))
	expr := strings.ReplaceAll(m.Template, "%s", op)
	re, err := regexp2.Compile(expr, regexp2.None)
	if err != nil {
		return false
	}
	matched, err := re.MatchString(typ)
	return err == nil && matched
}

func discriminatorValue(r Resource, attribute string) (string, bool) {
	v, ok := r.Get(attribute)
	if !ok {
		return "", false
	}
	s, ok := indirect(v).(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
