package kernel

type JobID string

func NewJobID(id string) JobID { return JobID(id) }
func (r JobID) String() string { return string(r) }
func (r JobID) IsEmpty() bool  { return string(r) == "" }

type ResumeID string

func NewResumeID(id string) ResumeID { return ResumeID(id) }
func (r ResumeID) String() string    { return string(r) }
func (r ResumeID) IsEmpty() bool     { return string(r) == "" }

type ScrapeRunID string

func NewScrapeRunID(id string) ScrapeRunID { return ScrapeRunID(id) }
func (r ScrapeRunID) String() string       { return string(r) }
func (r ScrapeRunID) IsEmpty() bool        { return string(r) == "" }
