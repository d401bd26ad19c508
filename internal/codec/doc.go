// Package codec reads and writes records and batch scripts as YAML or JSON.
//
// Decoded records are normalized so that every nested mapping is a
// map[string]any, which is the only container type the path accessor
// descends into.
//
// # Script Format
//
// A script is an ordered list of batches applied to a store:
//
//	steps:
//	  - set:
//	      user.name: ann
//	      user.address: {city: Oslo}
//	  - unset: [user.age]
//	  - set: {draft: true}
//	    silent: true
package codec
