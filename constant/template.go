package constant

// Script entry points looked up in the global table of a Lua editing script.
const (
	ScriptMainFn  = "Main"
	ScriptModule  = "editor"
	ScriptFileExt = ".lua"
)

// ScriptTemplate is a text/template used by "run new" to scaffold an editing script.
const ScriptTemplate = `{{ $divider := repeat "-" (plus (max (len .Name) (len .Author) 3) 12) }}{{ $divider }}
-- @name    {{ .Name }}
-- @author  {{ .Author }}
{{ $divider }}

local {{ .Module }} = require("{{ .Module }}")

--- Entry point, called once the media element is loaded.
function {{ .MainFn }}()
	{{ .Module }}.trim(0, 5)
	{{ .Module }}.play()
	{{ .Module }}.wait(1500)

	local state = {{ .Module }}.state()
	print(state.elapsed .. " / " .. state.total)

	{{ .Module }}.skip_end()
end

-- ex: ts=4 sw=4 et filetype=lua
`
