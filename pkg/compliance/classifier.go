package compliance

// Classify assigns a risk tier to one dependency fact. The function is
// pure and total: every fact yields exactly one classified dependency
// and no input can make it fail.
//
// Rules, in order:
//  1. absent license           -> unknown
//  2. identifier not in table  -> unknown
//  3. otherwise                -> the table's tier verbatim
//
// Version and language never influence the tier; they are carried
// through for display and histogram grouping only.
func Classify(fact DependencyFact, table *RiskTable) ClassifiedDependency {
	if fact.License == "" {
		return ClassifiedDependency{DependencyFact: fact, Risk: TierUnknown}
	}

	risk, ok := table.Lookup(fact.License)
	if !ok {
		return ClassifiedDependency{DependencyFact: fact, Risk: TierUnknown}
	}
	return ClassifiedDependency{DependencyFact: fact, Risk: risk.Tier}
}

// ClassifyAll classifies a sequence of facts, preserving input order.
// Each fact is independent; callers may shard this across goroutines
// when fact lists get large, but the sequential form is the contract.
func ClassifyAll(facts []DependencyFact, table *RiskTable) []ClassifiedDependency {
	deps := make([]ClassifiedDependency, len(facts))
	for i, fact := range facts {
		deps[i] = Classify(fact, table)
	}
	return deps
}
