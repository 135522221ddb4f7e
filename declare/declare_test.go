package declare_test

import (
	"fmt"

	. "github.com/robloxapi/rbxdom/declare"
)

func Example() {
	dom := Root{
		Instance("Part", Ref("RBX12345678"),
			Property("Name", String, "BasePlate"),
			Property("CanCollide", Bool, true),
			Property("Position", Vector3, 0, 10, 0),
			Property("Size", Vector3, 2, 1.2, 4),
			Instance("CFrameValue",
				Property("Name", String, "Value"),
				Property("Value", CFrame, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1),
			),
			Instance("ObjectValue",
				Property("Name", String, "Value"),
				Property("Value", Reference, "RBX12345678"),
			),
		),
	}.Declare()

	part := dom.Get(dom.Root()).Children()[0]
	fmt.Println(dom.Get(part).ClassName(), dom.Get(part).Get("Name"))
	// Output: Part BasePlate
}
