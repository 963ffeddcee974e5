package depcontainer

// EvaluateForDisplay resolves every child field against the resource and
// reports which rules hold for it. The children are resolved whether or
// not the rules hold; hiding them is left to the presentation layer.
//
// Errors come only from child fields and are returned unchanged.
func (c *Container) EvaluateForDisplay(r Resource) (*Result, error) {
	for _, f := range c.fields {
		if err := f.ResolveForDisplay(r); err != nil {
			return nil, err
		}
	}

	if r == nil {
		r = Data{}
	}
	res := newResult(ModeDisplay, len(c.rules))
	for _, rule := range c.rules {
		res.add(c.display(r, rule))
	}
	return res, nil
}

// AreDependenciesSatisfied reports whether every rule holds for the
// submitted data. A container without rules is never satisfied.
func (c *Container) AreDependenciesSatisfied(req Request) bool {
	if len(c.rules) == 0 {
		return false
	}
	return c.EvaluateRequest(req).Pass
}

// EvaluateRequest reports which rules hold for the submitted data.
func (c *Container) EvaluateRequest(req Request) *Result {
	if req == nil {
		req = Data{}
	}
	res := newResult(ModeFill, len(c.rules))
	for _, rule := range c.rules {
		res.add(c.fill(req, rule))
	}
	return res
}

func (c *Container) display(r Resource, rule Rule) RuleResult {
	value, present := r.Get(rule.Property)
	rr := RuleResult{Rule: rule, Value: value, Present: present}

	switch rule.Kind {
	case Empty:
		rr.Satisfied = IsEmpty(value)
	case NotEmpty:
		rr.Satisfied = !IsEmpty(value)
	case NullOrZero:
		rr.Satisfied = isNullOrZero(value, false)
	case NotEquals:
		rr.Satisfied = !LooseEquals(value, rule.Value)
	case In:
		rr.Satisfied = containsLoose(rule.Values, value)
	case NotIn:
		rr.Satisfied = !containsLoose(rule.Values, value)
	case Equals:
		if isMapResource(r) {
			rr.Satisfied = present && indirect(value) != nil && LooseEquals(value, rule.Value)
			break
		}
		if LooseEquals(value, rule.Value) {
			rr.Satisfied = true
			break
		}
		if d := c.opts.Discriminator; d != nil && d.Match(r, rule.Property, rule.Value) {
			rr.Satisfied = true
			rr.Discriminated = true
		}
	case Expression:
		rr.Satisfied, rr.Err = c.evaluateExpr(rule, value)
	}
	return rr
}

func (c *Container) fill(req Request, rule Rule) RuleResult {
	value, present := req.Get(rule.Property)
	rr := RuleResult{Rule: rule, Value: value, Present: present}

	switch rule.Kind {
	case Empty:
		rr.Satisfied = IsEmpty(value)
	case NotEmpty:
		rr.Satisfied = !IsEmpty(value)
	case NullOrZero:
		rr.Satisfied = isNullOrZero(value, true)
	case In:
		rr.Satisfied = containsLoose(rule.Values, value)
	case NotIn:
		rr.Satisfied = !containsLoose(rule.Values, value)
	case NotEquals:
		// a nil operand is treated as an unset condition
		rr.Satisfied = rule.Value != nil && !LooseEquals(rule.Value, value)
	case Equals:
		rr.Satisfied = rule.Value != nil && LooseEquals(rule.Value, value)
	case Expression:
		rr.Satisfied, rr.Err = c.evaluateExpr(rule, value)
	}
	return rr
}

func (c *Container) evaluateExpr(rule Rule, value any) (bool, error) {
	ev := c.opts.Evaluator
	if ev == nil {
		return false, ErrNoEvaluator
	}
	prg := rule.Program
	if prg == nil {
		var err error
		if prg, err = ev.Compile(rule.Expr); err != nil {
			return false, err
		}
	}
	ok, err := ev.Evaluate(prg, value)
	return ok && err == nil, err
}
