// Package schema defines the input records of the field-schema dialect:
// schema documents grouping flat, dot-path-addressed field declarations.
//
// A schema file holds a list of documents:
//
//	# schemas/http.yml
//	- name: http
//	  title: HTTP
//	  type: group
//	  description: Fields related to HTTP activity.
//	  reusable:
//	    top_level: true
//	    expected:
//	      - url                   # graft at root member "url"
//	      - at: process.parent    # graft under process.parent ...
//	        as: origin            # ... as member "origin"
//	  fields:
//	    - name: request.method
//	      type: keyword
//	      level: extended
//	      description: HTTP request method.
//	    - name: request.headers
//	      type: object
//	      object_type: keyword    # map of string to string
//	    - name: response.status_code
//	      type: long
//	      normalize: [array]      # wrap in a list
//
// Field names are dot paths; every segment before the last names an
// intermediate structure. Records are plain values: they carry both yaml and
// json tags so that the loader can validate them after decoding.
package schema
