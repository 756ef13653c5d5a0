// Package experience contains concrete ExperienceStore implementations. The
// store contract and the Experience type reside in the core package; depend
// on core.ExperienceStore in your code and select an implementation at
// wiring time.
package experience
