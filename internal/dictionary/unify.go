package dictionary

// Unify folds local's levels into global in first-seen order, returning a
// local-code -> global-code mapping. global is mutated in place. Workers
// must be folded in worker-index order so that the resulting global
// dictionary's level order matches "first appearance across workers in
// worker-index order".
func Unify(global *Dictionary, local *Dictionary) []Code {
	mapping := make([]Code, local.Len())
	for code := Code(0); int(code) < local.Len(); code++ {
		if code == 0 {
			mapping[0] = 0
			continue
		}
		level := local.Level(code)
		globalCode, _ := global.Intern(level)
		mapping[code] = globalCode
	}
	return mapping
}
