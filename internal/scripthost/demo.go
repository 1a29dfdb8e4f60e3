package scripthost

import _ "embed"

// DemoGame is a small script exposing the surface the controls drive. It is
// used when no game file is given and by tests.
//
//go:embed demo/game.js
var DemoGame string
