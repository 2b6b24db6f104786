// Package deeplinkconfig loads deep link parsing rules from YAML.
//
// A rule file lists rules in priority order. Every component matcher is
// either a plain string (an exact value) or a mapping with exactly one of
// exact, pattern or template. Components that are left out match anything.
// The build key names a builder registered in code:
//
//	rules:
//	  - name: youtube
//	    scheme: {pattern: "^https?$"}
//	    authority: {pattern: '^(www\.)?youtube\.com$'}
//	    build: video
//	  - name: item
//	    scheme: myapp
//	    authority: shop
//	    path: {template: "/items/{id:int}"}
//	    build: item
//
// Apply binds a loaded file to a parser:
//
//	cfg, err := deeplinkconfig.LoadFile("deeplinks.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = cfg.Apply(router.Parser(), deeplinkconfig.Builders{
//	    "video": buildVideo,
//	    "item":  buildItem,
//	})
package deeplinkconfig
