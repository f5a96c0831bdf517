package tw

func u32(v uint32) *uint32 { return &v }
func f32(v float32) *float32 { return &v }
func str(v string) *string { return &v }
func intp(v int) *int { return &v }

// ClassMap holds the named utilities understood by ParseClasses.
var ClassMap = map[string]StyleProperties{
	// Display
	"block":  {Display: str("block")},
	"flex":   {Display: str("flex")},
	"hidden": {Display: str("none")},

	// Position
	"static": {Position: str("static")},
	"fixed":  {Position: str("fixed")},

	// Sizing
	"w-full": {Width: &Length{Value: 100, Percent: true}},
	"w-4":    {Width: &Length{Value: 16}},
	"h-4":    {Height: &Length{Value: 16}},
	"gap-1":  {Gap: f32(4)},
	"gap-2":  {Gap: f32(8)},
	"gap-4":  {Gap: f32(16)},

	// Text overflow
	"truncate":          {WhiteSpace: str("nowrap"), OverflowX: str("hidden"), TextOverflow: str("ellipsis")},
	"whitespace-nowrap": {WhiteSpace: str("nowrap")},
	"overflow-hidden":   {OverflowX: str("hidden")},

	// Typography
	"font-normal":   {FontWeight: intp(400)},
	"font-medium":   {FontWeight: intp(500)},
	"font-semibold": {FontWeight: intp(600)},

	// Borders
	"border":   {BorderWidth: f32(1)},
	"border-0": {BorderWidth: f32(0)},
	"border-2": {BorderWidth: f32(2)},

	// Colors
	"text-white":      {TextColor: u32(0xFFFFFFFF)},
	"text-gray-500":   {TextColor: u32(0x6B7280FF)},
	"text-gray-700":   {TextColor: u32(0x374151FF)},
	"text-gray-900":   {TextColor: u32(0x111827FF)},
	"text-red-600":    {TextColor: u32(0xDC2626FF)},
	"text-error":      {TextColor: u32(0xDC2626FF)},
	"bg-white":        {BackgroundColor: u32(0xFFFFFFFF)},
	"bg-gray-900":     {BackgroundColor: u32(0x111827FF)},
	"border-gray-300": {BorderColor: u32(0xD1D5DBFF)},
	"border-blue-500": {BorderColor: u32(0x3B82F6FF)},
	"border-red-500":  {BorderColor: u32(0xEF4444FF)},
	"border-error":    {BorderColor: u32(0xEF4444FF)},
}
