// Package project defines the Project value tree the render engine
// consumes: Flare (light, lens, starburst, ghost), Render (quality and
// device selection), Diagram (cross-section debug view), and Output
// (where and in what colorspace to write results), plus the JSON Storage
// collaborator that loads them and the Animation type that broadcasts a
// project across a frame range.
package project
