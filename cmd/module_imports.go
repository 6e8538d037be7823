package cmd

// import modules so their init() functions are called

import (
	_ "github.com/praetorian-inc/m365/modules/aad"
	_ "github.com/praetorian-inc/m365/modules/flow"
	_ "github.com/praetorian-inc/m365/modules/spfx"
	_ "github.com/praetorian-inc/m365/modules/spo"
)
