package params

// RequirementOf combines the requirements of an ordered list of positions
// into the signature's aggregate, left to right. Combine is commutative, so
// the order does not affect the result; left-to-right is the deterministic
// evaluation order.
func RequirementOf(ps ...Param) Requirement {
	req := None()
	for _, p := range ps {
		req = req.Combine(p.ParamRequirement())
	}
	return req
}

// Extract runs each position's extraction in declaration order against one
// shared accessor, stopping at the first failure. The ordering determines
// which raw argument index maps to which consuming position.
func Extract(acc *Accessor, ps ...Param) error {
	for _, p := range ps {
		if err := p.FromParam(acc); err != nil {
			return err
		}
	}
	return nil
}
