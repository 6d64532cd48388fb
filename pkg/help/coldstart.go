package help

const ColdstartYAML = `# wsk (worksheet-kit) Quick Start

inputs:
  pack: "Lesson pack (YAML or JSON): title, level, standard_text, adapted_text, exercises"
  lines: "Plain text file, one line per visual line (- reads stdin)"
  html: "HTML article or fragment, converted to lines"

documents:
  texts: "Banner, metadata and both reading texts"
  exercises: "Prompts and choices for one mode (standard | adapted)"
  key: "Teacher key: | # | Type | Answer | table"

formats:
  txt: "Plain text, one line per row"
  pdf: "Paginated fixed-width layout (validated after writing)"
  docx: "Styled page flow with real tables"

line_roles:
  banner: "Starts with WORKSHEET, EXERCISE SHEET, TEACHER KEY, ..."
  section: "=== Heading ==="
  metadata: "Source:, Level:, Text type:, Length:, Language:, Mode:, Date:"
  table_row: "| a | b |  (separator rows like | --- | --- | are dropped)"

commands:
  export_pack: |
    wsk export --pack lesson.yaml --formats pdf,docx --docs texts,exercises,key --mode adapted

  export_lines: |
    wsk export --lines notes.txt --formats txt,pdf

  export_html: |
    wsk export --html article.html --url https://example.org/article

  grade: |
    wsk grade --pack lesson.yaml --answers answers.yaml --mode standard

  worksheet: |
    wsk worksheet --pack lesson.yaml --mode adapted

  similarity: |
    wsk similarity --expected "Bonjour madame" --transcript "bonjour madam"

  lookup: |
    wsk lookup --word phare --lang fr --target en

  serve: |
    wsk serve --addr :8080

  history: |
    wsk history exports --limit 20
    wsk history sessions
    wsk history session <session-id>

answers_file: |
  answers:
    - id: 1
      text: keeper
    - id: 2
      choice: lamp
    - id: 3
      blanks: [stairs, boats]

grading:
  correct: "Trimmed, case-insensitive match (free text also accepts containment)"
  incorrect: "Wrong or empty answer on a gradable item"
  ungraded: "Ordering/matching tasks, blank-count mismatch, key not among choices"

output:
  default: "JSON on stdout, logs as JSON on stderr"
  yaml: "--format yaml"
  quiet: "--quiet (errors only)"
`
